package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"krishi-market/cache"
	"krishi-market/models"
	"krishi-market/repository"
)

// ProfileService serves public profiles, reading through the profile cache.
type ProfileService struct {
	repo  repository.UserRepository
	cache cache.ProfileCache
	log   *zap.Logger
}

func NewProfileService(repo repository.UserRepository, c cache.ProfileCache, log *zap.Logger) *ProfileService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ProfileService{repo: repo, cache: c, log: log}
}

// canonicalID returns the lowercase hex form used as the cache key.
// ObjectIDFromHex accepts either case, so raw client ids are never keys.
func canonicalID(id string) (string, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", repository.ErrInvalidID
	}
	return objID.Hex(), nil
}

// PublicProfile returns repository.ErrInvalidID or repository.ErrNotFound
// when the id does not resolve to an account.
func (s *ProfileService) PublicProfile(ctx context.Context, id string) (models.PublicProfile, error) {
	key, err := canonicalID(id)
	if err != nil {
		return models.PublicProfile{}, err
	}

	if profile, ok := s.cache.Get(ctx, key); ok {
		return *profile, nil
	}

	user, err := s.repo.FindByID(ctx, key, false)
	if err != nil {
		return models.PublicProfile{}, err
	}

	profile := user.PublicProfile()
	s.cache.Set(ctx, profile)
	return profile, nil
}

// Invalidate drops any cached profile after the account changes.
func (s *ProfileService) Invalidate(ctx context.Context, id string) {
	key, err := canonicalID(id)
	if err != nil {
		return
	}
	s.cache.Delete(ctx, key)
	s.log.Debug("profile cache invalidated", zap.String("user_id", key))
}

// Refresh stores the profile of a freshly reloaded account. It overwrites
// an entry a concurrent read may have filled from the pre-update document
// between Invalidate and the reload.
func (s *ProfileService) Refresh(ctx context.Context, user *models.User) {
	if user == nil || user.ID.IsZero() {
		return
	}
	s.cache.Set(ctx, user.PublicProfile())
}

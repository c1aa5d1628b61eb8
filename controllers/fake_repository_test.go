package controllers

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"krishi-market/models"
	"krishi-market/repository"
)

// memoryRepository mimics MongoUserRepository closely enough for handler
// tests: unique email, password projection and modified counts.
type memoryRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User

	failNext error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: map[primitive.ObjectID]models.User{}}
}

func (r *memoryRepository) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *memoryRepository) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return primitive.NilObjectID, err
	}

	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryRepository) FindByID(_ context.Context, id string, withPassword bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	u, ok := r.users[objID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !withPassword {
		u.Password = ""
	}
	return &u, nil
}

func (r *memoryRepository) UpdateFields(_ context.Context, id string, fields bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, repository.ErrInvalidID
	}
	if err := r.takeFailure(); err != nil {
		return 0, err
	}

	u, ok := r.users[objID]
	if !ok {
		return 0, nil
	}

	changed := false
	for k, v := range fields {
		s, _ := v.(string)
		var target *string
		switch k {
		case "name":
			target = &u.Name
		case "email":
			for otherID, other := range r.users {
				if otherID != objID && other.Email == s {
					return 0, repository.ErrEmailTaken
				}
			}
			target = &u.Email
		case "phone":
			target = &u.Phone
		case "address":
			target = &u.Address
		case "pincode":
			target = &u.Pincode
		default:
			return 0, errors.New("unexpected field " + k)
		}
		if *target != s {
			*target = s
			changed = true
		}
	}
	if !changed {
		return 0, nil
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[objID] = u
	return 1, nil
}

// stubUpdateRepository forces a specific UpdateFields result regardless of store contents.
type stubUpdateRepository struct {
	*memoryRepository
	modified int64
}

func (r *stubUpdateRepository) UpdateFields(context.Context, string, bson.M) (int64, error) {
	return r.modified, nil
}

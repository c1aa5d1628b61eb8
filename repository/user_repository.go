package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"krishi-market/models"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrInvalidID  = errors.New("invalid user id")
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository is the data-access surface the controllers depend on.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string, withPassword bool) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) (int64, error)
}

type MongoUserRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
	now        func() time.Time
}

func NewUserRepository(collection *mongo.Collection, timeout time.Duration) *MongoUserRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MongoUserRepository{
		collection: collection,
		timeout:    timeout,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the unique email index. Safe to call on every boot.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := r.now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrEmailTaken
		}
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return user.ID, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, true)
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string, withPassword bool) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": objID}, withPassword)
}

// UpdateFields applies $set with the given fields and returns how many
// documents actually changed. Zero means the id matched nothing or every
// value was already current.
func (r *MongoUserRepository) UpdateFields(ctx context.Context, id string, fields bson.M) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}
	if len(fields) == 0 {
		return 0, nil
	}

	set := bson.M{"updatedAt": r.now()}
	changed := make(bson.A, 0, len(fields))
	for k, v := range fields {
		set[k] = v
		changed = append(changed, bson.M{k: bson.M{"$ne": v}})
	}
	// Only match when at least one value differs so updatedAt is left alone
	// for no-op updates.
	filter := bson.M{"_id": objID, "$or": changed}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("update user: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, withPassword bool) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOne()
	if !withPassword {
		opts.SetProjection(bson.M{"password": 0})
	}

	var user models.User
	err := r.collection.FindOne(ctx, filter, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

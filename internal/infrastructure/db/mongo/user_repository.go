package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streampass/video-platform/internal/core/domain"
	"github.com/streampass/video-platform/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository on MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	PasswordHash   string             `bson:"password_hash"`
	Role           string             `bson:"role"`
	Coins          int                `bson:"coins"`
	ChannelName    string             `bson:"channel_name,omitempty"`
	Category       string             `bson:"category,omitempty"`
	Bio            string             `bson:"bio,omitempty"`
	ProfilePicture string             `bson:"profile_picture,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	LastLogin      time.Time          `bson:"last_login,omitempty"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:             mu.ID.Hex(),
		Username:       mu.Username,
		Email:          mu.Email,
		PasswordHash:   mu.PasswordHash,
		Role:           mu.Role,
		Coins:          mu.Coins,
		ChannelName:    mu.ChannelName,
		Category:       mu.Category,
		Bio:            mu.Bio,
		ProfilePicture: mu.ProfilePicture,
		CreatedAt:      mu.CreatedAt,
		LastLogin:      mu.LastLogin,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Coins:        user.Coins,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, domain.ErrUserNotFound)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, domain.ErrUserNotFound)
}

// FindByChannelName matches the channel name case-insensitively, mirroring
// the channel page lookup.
func (r *UserRepository) FindByChannelName(ctx context.Context, name string) (*domain.User, error) {
	filter := bson.M{"channel_name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(name) + "$",
		Options: "i",
	}}
	return r.findOne(ctx, filter, domain.ErrChannelNotFound)
}

func (r *UserRepository) UpdateChannel(ctx context.Context, userID string, update ports.ChannelUpdate) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set := bson.M{"channel_name": update.ChannelName, "category": update.Category}
	if update.Bio != "" {
		set["bio"] = update.Bio
	}
	if update.ProfilePicture != "" {
		set["profile_picture"] = update.ProfilePicture
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update channel: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, notFound error) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the uniqueness constraints on the users collection.
// Channel names are unique only among documents that actually set one.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "channel_name", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"channel_name": bson.M{"$exists": true}}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

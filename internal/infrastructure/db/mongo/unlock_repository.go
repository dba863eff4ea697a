package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streampass/video-platform/internal/core/domain"
)

const collectionUnlocks = "unlocks"

// UnlockRepository implements ports.UnlockRepository on MongoDB. The unique
// index on (viewer_id, video_id) enforces the one-grant-per-pair invariant
// at the storage layer; Purchase wraps the debit and the grant insert in a
// multi-document transaction so neither can apply without the other.
type UnlockRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewUnlockRepository(db *mongo.Database) *UnlockRepository {
	return &UnlockRepository{
		coll:  db.Collection(collectionUnlocks),
		users: db.Collection(collectionUsers),
	}
}

type mongoUnlock struct {
	ViewerID   string    `bson:"viewer_id"`
	VideoID    string    `bson:"video_id"`
	CoinsSpent int       `bson:"coins_spent"`
	UnlockedAt time.Time `bson:"unlocked_at"`
}

func (mu *mongoUnlock) toDomain() *domain.Unlock {
	return &domain.Unlock{
		ViewerID:   mu.ViewerID,
		VideoID:    mu.VideoID,
		CoinsSpent: mu.CoinsSpent,
		UnlockedAt: mu.UnlockedAt,
	}
}

// Purchase atomically debits the viewer and inserts the grant. The debit is
// a conditional update (coins >= cost) so the balance can never go negative;
// the grant insert is guarded by the unique index. Any failure aborts the
// transaction, leaving no partial state. A duplicate-key conflict means a
// concurrent purchase won the race and is reported as ErrAlreadyUnlocked.
func (r *UnlockRepository) Purchase(ctx context.Context, viewerID, videoID string, coinCost int) (*domain.Unlock, error) {
	viewerOID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("purchase: start session: %w", err)
	}
	defer session.EndSession(ctx)

	doc := mongoUnlock{
		ViewerID:   viewerID,
		VideoID:    videoID,
		CoinsSpent: coinCost,
		UnlockedAt: time.Now().UTC(),
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.users.UpdateOne(sc,
			bson.M{"_id": viewerOID, "coins": bson.M{"$gte": coinCost}},
			bson.M{"$inc": bson.M{"coins": -coinCost}},
		)
		if err != nil {
			return nil, fmt.Errorf("debit coins: %w", err)
		}
		if res.ModifiedCount == 0 {
			return nil, r.debitFailure(sc, viewerOID, coinCost)
		}

		if _, err := r.coll.InsertOne(sc, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrAlreadyUnlocked
			}
			return nil, fmt.Errorf("insert unlock: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return doc.toDomain(), nil
}

// debitFailure distinguishes a missing viewer from a genuine shortfall after
// the conditional debit matched nothing.
func (r *UnlockRepository) debitFailure(ctx context.Context, viewerOID primitive.ObjectID, coinCost int) error {
	var u struct {
		Coins int `bson:"coins"`
	}
	err := r.users.FindOne(ctx, bson.M{"_id": viewerOID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("read balance: %w", err)
	}
	return &domain.InsufficientCoinsError{Required: coinCost, Available: u.Coins}
}

// Exists is the O(1) grant-index lookup used by the access resolver.
func (r *UnlockRepository) Exists(ctx context.Context, viewerID, videoID string) (bool, error) {
	filter := bson.M{"viewer_id": viewerID, "video_id": videoID}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("grant lookup: %w", err)
	}
	return n > 0, nil
}

func (r *UnlockRepository) ListByViewer(ctx context.Context, viewerID string) ([]*domain.Unlock, error) {
	opts := options.Find().SetSort(bson.D{{Key: "unlocked_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"viewer_id": viewerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer cur.Close(ctx)

	var unlocks []*domain.Unlock
	for cur.Next(ctx) {
		var mu mongoUnlock
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode unlock: %w", err)
		}
		unlocks = append(unlocks, mu.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	return unlocks, nil
}

func (r *UnlockRepository) DeleteByViewer(ctx context.Context, viewerID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"viewer_id": viewerID}); err != nil {
		return fmt.Errorf("delete unlocks by viewer: %w", err)
	}
	return nil
}

func (r *UnlockRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"video_id": videoID}); err != nil {
		return fmt.Errorf("delete unlocks by video: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique (viewer_id, video_id) index. This is the
// invariant the whole purchase path leans on; it must exist before the
// server takes traffic.
func (r *UnlockRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "viewer_id", Value: 1}, {Key: "video_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

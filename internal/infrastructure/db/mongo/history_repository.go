package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streampass/video-platform/internal/core/domain"
)

const collectionHistory = "watch_history"

// HistoryRepository implements ports.HistoryRepository on MongoDB.
type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(collectionHistory)}
}

type mongoHistory struct {
	UserID    string    `bson:"user_id"`
	VideoID   string    `bson:"video_id"`
	Progress  int       `bson:"progress"`
	Completed bool      `bson:"completed"`
	WatchedAt time.Time `bson:"watched_at"`
}

// Upsert writes the progress row keyed by (user, video). The unique index
// plus upsert semantics make concurrent checkpoints collapse onto one row.
func (r *HistoryRepository) Upsert(ctx context.Context, entry *domain.WatchHistory) error {
	filter := bson.M{"user_id": entry.UserID, "video_id": entry.VideoID}
	update := bson.M{"$set": bson.M{
		"progress":   entry.Progress,
		"completed":  entry.Completed,
		"watched_at": entry.WatchedAt,
	}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert watch history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WatchHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "watched_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list watch history: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.WatchHistory
	for cur.Next(ctx) {
		var mh mongoHistory
		if err := cur.Decode(&mh); err != nil {
			return nil, fmt.Errorf("decode watch history: %w", err)
		}
		entries = append(entries, &domain.WatchHistory{
			UserID:    mh.UserID,
			VideoID:   mh.VideoID,
			Progress:  mh.Progress,
			Completed: mh.Completed,
			WatchedAt: mh.WatchedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list watch history: %w", err)
	}
	return entries, nil
}

func (r *HistoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete watch history by user: %w", err)
	}
	return nil
}

func (r *HistoryRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"video_id": videoID}); err != nil {
		return fmt.Errorf("delete watch history by video: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique (user_id, video_id) key behind the upsert.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "video_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

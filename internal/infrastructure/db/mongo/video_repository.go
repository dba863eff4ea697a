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

const collectionVideos = "videos"

// VideoRepository implements ports.VideoRepository on MongoDB.
type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{coll: db.Collection(collectionVideos)}
}

type mongoVideo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Filename    string             `bson:"filename"`
	Thumbnail   string             `bson:"thumbnail,omitempty"`
	CoinCost    int                `bson:"coin_cost"`
	Duration    int                `bson:"duration,omitempty"`
	Views       int64              `bson:"views"`
	IsPublic    bool               `bson:"is_public"`
	CreatorID   string             `bson:"creator_id"`
	UploadedAt  time.Time          `bson:"uploaded_at"`
}

func (mv *mongoVideo) toDomain() *domain.Video {
	return &domain.Video{
		ID:          mv.ID.Hex(),
		Title:       mv.Title,
		Description: mv.Description,
		Filename:    mv.Filename,
		Thumbnail:   mv.Thumbnail,
		CoinCost:    mv.CoinCost,
		Duration:    mv.Duration,
		Views:       mv.Views,
		IsPublic:    mv.IsPublic,
		CreatorID:   mv.CreatorID,
		UploadedAt:  mv.UploadedAt,
	}
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	doc := mongoVideo{
		Title:       video.Title,
		Description: video.Description,
		Filename:    video.Filename,
		Thumbnail:   video.Thumbnail,
		CoinCost:    video.CoinCost,
		Duration:    video.Duration,
		IsPublic:    video.IsPublic,
		CreatorID:   video.CreatorID,
		UploadedAt:  video.UploadedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	created := *video
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	var mv mongoVideo
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return mv.toDomain(), nil
}

func (r *VideoRepository) ListPublic(ctx context.Context) ([]*domain.Video, error) {
	return r.list(ctx, bson.M{"is_public": true})
}

func (r *VideoRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Video, error) {
	return r.list(ctx, bson.M{"creator_id": creatorID})
}

func (r *VideoRepository) list(ctx context.Context, filter bson.M) ([]*domain.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer cur.Close(ctx)

	var videos []*domain.Video
	for cur.Next(ctx) {
		var mv mongoVideo
		if err := cur.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode video: %w", err)
		}
		videos = append(videos, mv.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

func (r *VideoRepository) UpdateCoinCost(ctx context.Context, videoID string, coinCost int) error {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"coin_cost": coinCost}})
	if err != nil {
		return fmt.Errorf("update coin cost: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// IncrementViews bumps the monotonic counter. $inc keeps it correct under
// concurrent renders without any read-modify-write.
func (r *VideoRepository) IncrementViews(ctx context.Context, videoID string) error {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, videoID string) error {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the videos collection.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "uploaded_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

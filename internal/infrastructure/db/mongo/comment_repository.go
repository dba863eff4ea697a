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

const collectionComments = "comments"

// CommentRepository implements ports.CommentRepository on MongoDB.
type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(collectionComments)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	VideoID   string             `bson:"video_id"`
	UserID    string             `bson:"user_id"`
	Username  string             `bson:"username,omitempty"`
	ParentID  string             `bson:"parent_id,omitempty"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mc *mongoComment) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        mc.ID.Hex(),
		VideoID:   mc.VideoID,
		UserID:    mc.UserID,
		Username:  mc.Username,
		ParentID:  mc.ParentID,
		Content:   mc.Content,
		CreatedAt: mc.CreatedAt,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := mongoComment{
		VideoID:   comment.VideoID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var mc mongoComment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"video_id": videoID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	for cur.Next(ctx) {
		var mc mongoComment
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, mc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"video_id": videoID}); err != nil {
		return fmt.Errorf("delete comments by video: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-video listing index.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "video_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

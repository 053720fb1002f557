package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkwell/models"
)

// Sort orders for published blog listings.
const (
	SortByPublishedAt = "publishedAt"
	SortByTotalReads  = "activity.total_reads"
)

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection("blogs")}
}

// Insert stores a new blog and returns its document id.
func (r *BlogRepository) Insert(ctx context.Context, b *models.Blog) (primitive.ObjectID, error) {
	if b.PublishedAt.IsZero() {
		b.PublishedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	b.ID = id
	return id, nil
}

// DeleteByID removes a blog document. Used to compensate when the author
// update after an insert fails.
func (r *BlogRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindPublishedByBlogID returns a non-draft blog by its public id,
// content included.
func (r *BlogRepository) FindPublishedByBlogID(ctx context.Context, blogID string) (*models.Blog, error) {
	var b models.Blog
	filter := bson.M{"blog_id": blogID, "draft": false}
	if err := r.col.FindOne(ctx, filter).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListPublishedOptions narrows and orders a published-blog listing.
type ListPublishedOptions struct {
	// SortKey is one of SortByPublishedAt or SortByTotalReads,
	// always descending.
	SortKey string
	Limit   int64
	// Tag filters to blogs carrying the tag. Empty means no tag filter.
	Tag string
}

// ListPublished returns non-draft blogs ordered by the given key, content
// omitted from the projection.
func (r *BlogRepository) ListPublished(ctx context.Context, opt ListPublishedOptions) ([]models.Blog, error) {
	filter := bson.M{"draft": false}
	if opt.Tag != "" {
		filter["tags"] = opt.Tag
	}

	sortKey := opt.SortKey
	if sortKey == "" {
		sortKey = SortByPublishedAt
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: -1}}).
		SetLimit(opt.Limit).
		SetProjection(bson.M{"content": 0})

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var blogs []models.Blog
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

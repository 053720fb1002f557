package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Block is a single editor content block. Data is kept schemaless because
// the block payload varies by type (paragraph, header, image, ...).
type Block struct {
	ID   string                 `bson:"id,omitempty" json:"id,omitempty"`
	Type string                 `bson:"type" json:"type"`
	Data map[string]interface{} `bson:"data" json:"data"`
}

// Content is the structured editor document of a blog.
type Content struct {
	Time    int64   `bson:"time,omitempty" json:"time,omitempty"`
	Blocks  []Block `bson:"blocks" json:"blocks"`
	Version string  `bson:"version,omitempty" json:"version,omitempty"`
}

// Activity holds denormalized engagement counters. Only total_reads drives
// behavior in this service (trending order); the rest are kept for the
// reader-facing clients.
type Activity struct {
	TotalLikes          int64 `bson:"total_likes" json:"total_likes"`
	TotalComments       int64 `bson:"total_comments" json:"total_comments"`
	TotalReads          int64 `bson:"total_reads" json:"total_reads"`
	TotalParentComments int64 `bson:"total_parent_comments" json:"total_parent_comments"`
}

// Blog represents a published or draft blog document.
// Collection: blogs
type Blog struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	// BlogID is the public lookup key, distinct from the document id.
	// Derived from the slugified title plus a random suffix.
	BlogID string `bson:"blog_id" json:"blog_id"`

	Title   string   `bson:"title" json:"title"`
	Des     string   `bson:"des" json:"des"`
	Banner  string   `bson:"banner" json:"banner"`
	Content Content  `bson:"content" json:"content"`
	Tags    []string `bson:"tags" json:"tags"`

	Author   primitive.ObjectID `bson:"author" json:"author"`
	Activity Activity           `bson:"activity" json:"activity"`
	Draft    bool               `bson:"draft" json:"draft"`

	PublishedAt time.Time `bson:"publishedAt" json:"publishedAt"`
}

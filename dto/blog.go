package dto

import (
	"time"

	"inkwell/models"
)

// BlogCardDTO is the listing projection of a blog: everything a feed card
// needs, content omitted.
type BlogCardDTO struct {
	BlogID      string          `json:"blog_id"`
	Title       string          `json:"title"`
	Des         string          `json:"des"`
	Banner      string          `json:"banner"`
	Activity    models.Activity `json:"activity"`
	Tags        []string        `json:"tags"`
	PublishedAt time.Time       `json:"publishedAt"`
	Author      AuthorDTO       `json:"author"`
}

// NewBlogCardDTO flattens a blog and its author into a feed card.
func NewBlogCardDTO(b models.Blog, author models.User) BlogCardDTO {
	return BlogCardDTO{
		BlogID:      b.BlogID,
		Title:       b.Title,
		Des:         b.Des,
		Banner:      b.Banner,
		Activity:    b.Activity,
		Tags:        b.Tags,
		PublishedAt: b.PublishedAt,
		Author:      NewAuthorDTO(author),
	}
}

// BlogDTO is the full single-blog projection, content included.
type BlogDTO struct {
	BlogID      string         `json:"blog_id"`
	Title       string         `json:"title"`
	Des         string         `json:"des"`
	Banner      string         `json:"banner"`
	Content     models.Content `json:"content"`
	Tags        []string       `json:"tags"`
	PublishedAt time.Time      `json:"publishedAt"`
	Author      AuthorDTO      `json:"author"`
}

// NewBlogDTO builds the reader view of a single blog.
func NewBlogDTO(b models.Blog, author models.User) BlogDTO {
	return BlogDTO{
		BlogID:      b.BlogID,
		Title:       b.Title,
		Des:         b.Des,
		Banner:      b.Banner,
		Content:     b.Content,
		Tags:        b.Tags,
		PublishedAt: b.PublishedAt,
		Author:      NewAuthorDTO(author),
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkwell/dto"
	"inkwell/logger"
	"inkwell/models"
	"inkwell/repositories"
)

// Feeds return at most this many cards.
const maxFeedLimit = 5

var (
	nonAlphanumRegex = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// BlogStore is the slice of the blog repository the blog flows need.
type BlogStore interface {
	Insert(ctx context.Context, b *models.Blog) (primitive.ObjectID, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	FindPublishedByBlogID(ctx context.Context, blogID string) (*models.Blog, error)
	ListPublished(ctx context.Context, opt repositories.ListPublishedOptions) ([]models.Blog, error)
}

// AuthorStore is the slice of the user repository the blog flows need.
type AuthorStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	RegisterBlog(ctx context.Context, authorID primitive.ObjectID, blogID string, postsDelta int64) error
}

// BlogService implements blog creation and the read/list/search flows.
type BlogService struct {
	blogs BlogStore
	users AuthorStore
}

func NewBlogService(blogs BlogStore, users AuthorStore) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

// CreateBlogInput is the request body of POST /create-blog.
type CreateBlogInput struct {
	Title   string         `json:"title"`
	Des     string         `json:"des"`
	Banner  string         `json:"banner"`
	Content models.Content `json:"content"`
	Tags    []string       `json:"tags"`
	Draft   bool           `json:"draft"`
}

// Create validates and persists a blog for the given author, then registers
// it on the author document. The two writes are not atomic: when the author
// update fails the inserted blog is deleted again as compensation, so a
// success response always means both documents agree.
func (s *BlogService) Create(ctx context.Context, authorID string, in CreateBlogInput) (string, error) {
	if in.Title == "" {
		return "", Reject("You must provide a blog title to publish the blog")
	}
	if in.Des == "" || len(in.Des) > 200 {
		return "", Reject("You must provide a proper blog description under 200 words to publish the blog")
	}
	if in.Banner == "" {
		return "", Reject("You must provide a blog banner to publish the blog")
	}
	if len(in.Content.Blocks) == 0 {
		return "", Reject("There must be some blog content to publish it")
	}
	if len(in.Tags) == 0 || len(in.Tags) > 10 {
		return "", Reject("Provide tags in order to publish the blog, maximum 10")
	}

	author, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return "", fmt.Errorf("invalid author id: %w", err)
	}

	tags := make([]string, len(in.Tags))
	for i, tag := range in.Tags {
		tags[i] = strings.ToLower(tag)
	}

	blogID, err := generateBlogID(in.Title)
	if err != nil {
		return "", err
	}

	blog := &models.Blog{
		BlogID:  blogID,
		Title:   in.Title,
		Des:     in.Des,
		Banner:  in.Banner,
		Content: in.Content,
		Tags:    tags,
		Author:  author,
		Draft:   in.Draft,
	}

	if _, err := s.blogs.Insert(ctx, blog); err != nil {
		return "", fmt.Errorf("Failed to create blog: %w", err)
	}

	var postsDelta int64
	if !in.Draft {
		postsDelta = 1
	}
	if err := s.users.RegisterBlog(ctx, author, blogID, postsDelta); err != nil {
		// Compensate so no orphan blog survives a half-done creation.
		if delErr := s.blogs.DeleteByID(ctx, blog.ID); delErr != nil {
			logger.ErrorWithFields("failed to delete orphan blog after author update failure", logger.Fields{
				"blog_id": blogID,
				"error":   delErr.Error(),
			})
		}
		return "", fmt.Errorf("Failed to update user information: %w", err)
	}

	return blogID, nil
}

// Latest returns the newest published blogs, at most five.
func (s *BlogService) Latest(ctx context.Context) ([]dto.BlogCardDTO, error) {
	return s.listCards(ctx, repositories.ListPublishedOptions{
		SortKey: repositories.SortByPublishedAt,
		Limit:   maxFeedLimit,
	})
}

// Trending returns the most-read published blogs, at most five.
func (s *BlogService) Trending(ctx context.Context) ([]dto.BlogCardDTO, error) {
	return s.listCards(ctx, repositories.ListPublishedOptions{
		SortKey: repositories.SortByTotalReads,
		Limit:   maxFeedLimit,
	})
}

// SearchByTag returns the newest published blogs carrying the tag, at most
// five. Matching is exact tag equality, not full-text search.
func (s *BlogService) SearchByTag(ctx context.Context, tag string) ([]dto.BlogCardDTO, error) {
	return s.listCards(ctx, repositories.ListPublishedOptions{
		SortKey: repositories.SortByPublishedAt,
		Limit:   maxFeedLimit,
		Tag:     tag,
	})
}

// GetByBlogID returns a single published blog with full content.
func (s *BlogService) GetByBlogID(ctx context.Context, blogID string) (dto.BlogDTO, error) {
	blog, err := s.blogs.FindPublishedByBlogID(ctx, blogID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.BlogDTO{}, ErrBlogNotFound
		}
		return dto.BlogDTO{}, fmt.Errorf("failed to load blog: %w", err)
	}

	var author models.User
	if u, err := s.users.FindByID(ctx, blog.Author); err == nil {
		author = *u
	}

	return dto.NewBlogDTO(*blog, author), nil
}

func (s *BlogService) listCards(ctx context.Context, opt repositories.ListPublishedOptions) ([]dto.BlogCardDTO, error) {
	blogs, err := s.blogs.ListPublished(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	authors, err := s.loadAuthors(ctx, blogs)
	if err != nil {
		return nil, err
	}

	cards := make([]dto.BlogCardDTO, 0, len(blogs))
	for _, b := range blogs {
		cards = append(cards, dto.NewBlogCardDTO(b, authors[b.Author]))
	}
	return cards, nil
}

// loadAuthors batch-loads the distinct authors of a listing.
func (s *BlogService) loadAuthors(ctx context.Context, blogs []models.Blog) (map[primitive.ObjectID]models.User, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(blogs))
	ids := make([]primitive.ObjectID, 0, len(blogs))
	for _, b := range blogs {
		if _, ok := seen[b.Author]; ok {
			continue
		}
		seen[b.Author] = struct{}{}
		ids = append(ids, b.Author)
	}

	authors, err := s.users.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	return authors, nil
}

// generateBlogID derives the public blog id from the slugified title plus a
// random token, so titles never have to be unique.
func generateBlogID(title string) (string, error) {
	slug := nonAlphanumRegex.ReplaceAllString(title, " ")
	slug = whitespaceRegex.ReplaceAllString(strings.TrimSpace(slug), "-")

	token, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate blog id: %w", err)
	}
	return slug + token, nil
}

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkwell/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Insert stores a new user and returns its document id.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now()
	}
	if u.Blogs == nil {
		u.Blogs = []string{}
	}
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	u.ID = id
	return id, nil
}

// FindByEmail returns a user by personal_info.email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"personal_info.email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a user by document id.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UsernameExists reports whether any user already holds the given username.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"personal_info.username": username}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindManyByIDs loads the users for the given ids, keyed by id. Only the
// public author fields are projected.
func (r *UserRepository) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}

// RegisterBlog appends a blog id to the author's blog list and bumps the
// published-post counter by postsDelta (0 for drafts).
func (r *UserRepository) RegisterBlog(ctx context.Context, authorID primitive.ObjectID, blogID string, postsDelta int64) error {
	_, err := r.col.UpdateByID(ctx, authorID, bson.M{
		"$inc":  bson.M{"account_info.total_posts": postsDelta},
		"$push": bson.M{"blogs": blogID},
	})
	return err
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalInfo holds the identity fields of a user.
// Password stays empty for accounts created through Google sign-in.
type PersonalInfo struct {
	Fullname   string `bson:"fullname" json:"fullname"`
	Email      string `bson:"email" json:"email"`
	Password   string `bson:"password,omitempty" json:"-"`
	Username   string `bson:"username" json:"username"`
	Bio        string `bson:"bio" json:"bio"`
	ProfileImg string `bson:"profile_img" json:"profile_img"`
}

// AccountInfo holds denormalized per-user counters.
type AccountInfo struct {
	TotalPosts int64 `bson:"total_posts" json:"total_posts"`
	TotalReads int64 `bson:"total_reads" json:"total_reads"`
}

// User represents an author account.
// Collection: users
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PersonalInfo PersonalInfo       `bson:"personal_info" json:"personal_info"`
	AccountInfo  AccountInfo        `bson:"account_info" json:"account_info"`

	// GoogleAuth is true when the account was created via Google sign-in.
	// Such accounts have no local password and reject password login.
	GoogleAuth bool `bson:"google_auth" json:"google_auth"`

	// Blogs is the ordered list of public blog ids authored by this user.
	Blogs []string `bson:"blogs" json:"blogs"`

	JoinedAt time.Time `bson:"joinedAt" json:"joinedAt"`
}

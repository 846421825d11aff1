package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const UsersCollection = "users"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultUserPhoto is served for accounts that never uploaded a picture.
const DefaultUserPhoto = "https://res.cloudinary.com/blogapi/image/upload/v1/blogapi/default-user.png"

type User struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName     string        `json:"fullName" bson:"full_name"`
	Email        string        `json:"email" bson:"email"`
	PasswordHash string        `json:"-" bson:"password_hash"`
	Photo        string        `json:"photo,omitempty" bson:"photo,omitempty"`
	PhotoID      string        `json:"-" bson:"photo_id,omitempty"`
	Headline     string        `json:"headline,omitempty" bson:"headline,omitempty"`
	Bio          string        `json:"bio,omitempty" bson:"bio,omitempty"`
	Role         string        `json:"role" bson:"role"`

	// The follow edge sets are kept out of API responses; clients read the
	// derived counts and the dedicated followers/following endpoints.
	Followers      []bson.ObjectID `json:"-" bson:"followers"`
	Following      []bson.ObjectID `json:"-" bson:"following"`
	FollowersCount int64           `json:"followersCount" bson:"followers_count"`
	FollowingCount int64           `json:"followingCount" bson:"following_count"`

	Active    bool      `json:"-" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// NormalizeEmail canonicalizes an address before it is stored or looked up,
// so case variants of one address resolve to one account.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// UserProfile is the expanded single-user read: the account plus its articles,
// bookmarked articles and per-collection activity counts.
type UserProfile struct {
	User

	Articles      []Article `json:"articles"`
	Bookmarks     []Article `json:"bookmarks"`
	NoOfArticles  int64     `json:"noOfArticles"`
	NoOfBookmarks int64     `json:"noOfBookmarks"`
	NoOfComments  int64     `json:"noOfComments"`
}

// UserSummary is the projection used when listing followers/following.
type UserSummary struct {
	ID       bson.ObjectID `json:"id" bson:"_id"`
	FullName string        `json:"fullName" bson:"full_name"`
	Photo    string        `json:"photo,omitempty" bson:"photo,omitempty"`
	Headline string        `json:"headline,omitempty" bson:"headline,omitempty"`
}

// UserMutable lists the profile fields a user may change about themselves,
// keyed by the JSON name clients submit.
var UserMutable = Whitelist{
	"fullName": "full_name",
	"headline": "headline",
	"bio":      "bio",
	"photo":    "photo",
}

package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Preferences struct {
	Topics        []string `bson:"topics" json:"topics"`
	Difficulty    string   `bson:"difficulty" json:"difficulty"`
	ResourceTypes []string `bson:"resource_types" json:"resourceTypes"`
}

// DefaultPreferences is what a freshly registered account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Topics:        []string{},
		Difficulty:    "intermediate",
		ResourceTypes: []string{},
	}
}

type HistoryEntry struct {
	ResourceID string    `bson:"resource_id" json:"resourceId"`
	Title      string    `bson:"title" json:"title"`
	ViewedAt   time.Time `bson:"viewed_at" json:"viewedAt"`
}

type User struct {
	UserID             string         `bson:"user_id" json:"user_id"`
	Username           string         `bson:"username" json:"username"`
	Email              string         `bson:"email" json:"email"`
	Password           string         `bson:"password" json:"-"`
	Role               string         `bson:"role" json:"role"`
	CreatedAt          time.Time      `bson:"createdAt" json:"createdAt"`
	Preferences        Preferences    `bson:"preferences" json:"preferences"`
	LearningHistory    []HistoryEntry `bson:"learning_history,omitempty" json:"learningHistory,omitempty"`
	Bookmarks          []string       `bson:"bookmarks,omitempty" json:"bookmarks,omitempty"`
	LastPasswordChange time.Time      `bson:"lastPasswordChange,omitempty" json:"-"`
	TwoFactorSecret    string         `bson:"two_factor_secret,omitempty" json:"-"`
	TwoFactorEnabled   bool           `bson:"two_factor_enabled" json:"two_factor_enabled"`
	RecoveryCodes      []string       `bson:"recovery_codes,omitempty" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthUser is the identity the auth middleware attaches to a request.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (a AuthUser) IsAdmin() bool {
	return a.Role == RoleAdmin
}

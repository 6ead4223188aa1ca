package dto

import (
	"time"

	"resourceshub/model"
)

type UserLink struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"` // Optional: GET, POST, PUT, DELETE, PATCH
}

type UserProfileResponse struct {
	ID               string              `json:"id"`
	Username         string              `json:"username"`
	Email            string              `json:"email"`
	Role             string              `json:"role"`
	CreatedAt        time.Time           `json:"created_at"`
	Preferences      model.Preferences   `json:"preferences"`
	Bookmarks        []string            `json:"bookmarks"`
	TwoFactorEnabled bool                `json:"two_factor_enabled"`
	Links            map[string]UserLink `json:"_links,omitempty"` // HAL UserLinks
}

func ToUserProfileResponse(user *model.User, links map[string]UserLink) UserProfileResponse {
	bookmarks := user.Bookmarks
	if bookmarks == nil {
		bookmarks = []string{}
	}
	return UserProfileResponse{
		ID:               user.UserID,
		Username:         user.Username,
		Email:            user.Email,
		Role:             user.Role,
		CreatedAt:        user.CreatedAt,
		Preferences:      user.Preferences,
		Bookmarks:        bookmarks,
		TwoFactorEnabled: user.TwoFactorEnabled,
		Links:            links,
	}
}

// ProfileLinks builds the HAL links advertised with a profile.
func ProfileLinks(baseURL string) map[string]UserLink {
	return map[string]UserLink{
		"self":        {Href: baseURL + "/user/profile", Method: "GET"},
		"update":      {Href: baseURL + "/user/profile", Method: "PUT"},
		"preferences": {Href: baseURL + "/user/preferences", Method: "PUT"},
		"bookmarks":   {Href: baseURL + "/user/bookmarks", Method: "GET"},
		"stats":       {Href: baseURL + "/user/stats", Method: "GET"},
		"logout":      {Href: baseURL + "/user/logout", Method: "POST"},
		"delete":      {Href: baseURL + "/user", Method: "DELETE"},
	}
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User         UserProfileResponse `json:"user"`
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	ExpiresAt    time.Time           `json:"expires_at"`
	SessionID    string              `json:"session_id,omitempty"`
}

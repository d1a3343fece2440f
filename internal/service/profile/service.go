package profile

import (
	"context"
	"errors"
	"strings"
)

// Service errors
var (
	ErrNotFound         = errors.New("profile not found")
	ErrUsernameRequired = errors.New("username required")
)

// DefaultMode is the profile display mode assigned on first creation.
const DefaultMode = "generic"

// Profile is a per-username record controlling public display and activation
// state. Usernames and emails are stored lowercased.
type Profile struct {
	Username    string
	Email       string
	Name        string
	Mode        string
	Message     string
	CanActivate bool
}

// UpsertParams carries the fields a caller wants to change. Nil means "keep
// the stored value". Name, Mode and Message accept explicit empty strings;
// an empty Email is ignored so a partial update cannot unlink a profile from
// its purchase email.
type UpsertParams struct {
	Email   *string
	Name    *string
	Mode    *string
	Message *string
}

// Service defines profile store operations.
//
// Implementations must lowercase usernames and emails before storage or
// comparison, and must apply a single Upsert atomically with respect to
// other calls on the same username.
type Service interface {
	Upsert(ctx context.Context, username string, params UpsertParams) (*Profile, error)
	Get(ctx context.Context, username string) (*Profile, error)
	ActivateByEmail(ctx context.Context, email string) (int, error)
}

// NormalizeUsername lowercases and trims a username into its store key form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// merge applies upsert semantics over an existing record (nil for first
// creation). CanActivate is never touched here; only ActivateByEmail sets it.
func merge(prev *Profile, username string, params UpsertParams) Profile {
	next := Profile{Username: username, Mode: DefaultMode}
	if prev != nil {
		next = *prev
		next.Username = username
	}
	if params.Email != nil && *params.Email != "" {
		next.Email = strings.ToLower(strings.TrimSpace(*params.Email))
	}
	if params.Name != nil {
		next.Name = *params.Name
	}
	if params.Mode != nil {
		next.Mode = *params.Mode
	}
	if params.Message != nil {
		next.Message = *params.Message
	}
	return next
}

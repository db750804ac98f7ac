package api

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared by repositories and services. Handlers map these to
// HTTP statuses at the boundary; anything unrecognized becomes a 500.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
)

// PGXPool is the subset of pgxpool.Pool the repositories use. Declared as an
// interface so pgxmock can stand in during tests.
type PGXPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Account is the full stored record for a registered user. The password hash
// never serializes; every read path returns this type directly.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Location       string    `json:"location"`
	Role           string    `json:"role"`
	PrivateAccount bool      `json:"privateAccount"`
	Bio            string    `json:"bio"`
	Availability   string    `json:"availability"`
	Rating         float64   `json:"rating"`
	SkillsOffered  []string  `json:"skillsOffered"`
	SkillsWanted   []string  `json:"skillsWanted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserSummary is the projection returned with a login response.
type UserSummary struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Location string  `json:"location"`
	Role     string  `json:"role"`
	Rating   float64 `json:"rating"`
}

// Summary projects an account for the login payload.
func (a *Account) Summary() UserSummary {
	return UserSummary{
		Name:     a.Name,
		Email:    a.Email,
		Location: a.Location,
		Role:     a.Role,
		Rating:   a.Rating,
	}
}

// UpdateProfileParams carries the mutable profile fields. This struct is the
// allow-list: email, password, role and rating have no field here, so client
// payloads cannot reach them through the update path. Nil means "leave as is",
// except bio and availability which the service coerces to empty when absent.
type UpdateProfileParams struct {
	Name           *string   `json:"name,omitempty"`
	Location       *string   `json:"location,omitempty"`
	PrivateAccount *bool     `json:"privateAccount,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Availability   *string   `json:"availability,omitempty"`
	SkillsOffered  *[]string `json:"skillsOffered,omitempty"`
	SkillsWanted   *[]string `json:"skillsWanted,omitempty"`
}

// Claims represents the custom claims included in the bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

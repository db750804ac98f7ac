package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/skillswaphq/skillswap/internal/api"
	"github.com/skillswaphq/skillswap/internal/api/skills"
)

// Validation failures surfaced by RateAccount.
var ErrSelfRating = errors.New("cannot rate yourself")
var ErrInvalidRating = errors.New("rating must be a number between 0 and 5")

var _ ProfileService = (*ProfileServiceImpl)(nil)

// ProfileService defines the profile operations exposed over HTTP.
type ProfileService interface {
	// GetOwnProfile returns the caller's own record. Privacy does not apply
	// to the owner.
	GetOwnProfile(ctx context.Context, callerID uuid.UUID) (*api.Account, error)

	// UpdateOwnProfile applies the allow-listed partial update. Absent bio
	// and availability are coerced to empty strings.
	UpdateOwnProfile(ctx context.Context, callerID uuid.UUID, params api.UpdateProfileParams) (*api.Account, error)

	// GetPublicProfile returns the target account unless it is private, in
	// which case api.ErrForbidden is returned.
	GetPublicProfile(ctx context.Context, targetID uuid.UUID) (*api.Account, error)

	// FindMatches returns every public account with a reciprocal skill
	// intersection with the caller. Order is unspecified.
	FindMatches(ctx context.Context, callerID uuid.UUID) ([]api.Account, error)

	// RateAccount overwrites the target's rating. Self-rating and values
	// outside [0,5] fail validation before any write.
	RateAccount(ctx context.Context, raterID, targetID uuid.UUID, rating float64) (*api.Account, error)
}

type ProfileServiceImpl struct {
	logger *slog.Logger
	repo   ProfileRepo
	cache  *cache.Cache
}

// NewProfileService creates a ProfileService. The cache is the shared
// instance backing the skills list; profile updates invalidate it so newly
// offered skills show up without waiting out the TTL.
func NewProfileService(repo ProfileRepo, c *cache.Cache, logger *slog.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  c,
	}
}

func (s *ProfileServiceImpl) GetOwnProfile(ctx context.Context, callerID uuid.UUID) (*api.Account, error) {
	return s.repo.GetByID(ctx, callerID)
}

func (s *ProfileServiceImpl) UpdateOwnProfile(ctx context.Context, callerID uuid.UUID, params api.UpdateProfileParams) (*api.Account, error) {
	l := s.logger.With(slog.String("method", "UpdateOwnProfile"), slog.String("userID", callerID.String()))

	// bio and availability are always written, defaulting to empty.
	empty := ""
	if params.Bio == nil {
		params.Bio = &empty
	}
	if params.Availability == nil {
		params.Availability = &empty
	}

	account, err := s.repo.Update(ctx, callerID, params)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && params.SkillsOffered != nil {
		s.cache.Delete(skills.AllSkillsCacheKey)
		l.DebugContext(ctx, "Invalidated skills cache after profile update")
	}

	return account, nil
}

func (s *ProfileServiceImpl) GetPublicProfile(ctx context.Context, targetID uuid.UUID) (*api.Account, error) {
	account, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if account.PrivateAccount {
		return nil, fmt.Errorf("profile %s is private: %w", targetID, api.ErrForbidden)
	}

	return account, nil
}

func (s *ProfileServiceImpl) FindMatches(ctx context.Context, callerID uuid.UUID) ([]api.Account, error) {
	caller, err := s.repo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.repo.FindMatches(ctx, caller.SkillsWanted, caller.SkillsOffered, callerID)
}

func (s *ProfileServiceImpl) RateAccount(ctx context.Context, raterID, targetID uuid.UUID, rating float64) (*api.Account, error) {
	if raterID == targetID {
		return nil, ErrSelfRating
	}
	if rating < 0 || rating > 5 {
		return nil, ErrInvalidRating
	}

	// Overwrite semantics: the last rater wins, no aggregation.
	return s.repo.UpdateRating(ctx, targetID, rating)
}

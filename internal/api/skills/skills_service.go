package skills

import (
	"context"
	"log/slog"

	"github.com/patrickmn/go-cache"
)

// AllSkillsCacheKey is where the deduplicated skill list lives in the shared
// cache. Profile updates that touch offered skills delete this key.
const AllSkillsCacheKey = "skills:all"

var _ SkillsService = (*SkillsServiceImpl)(nil)

// SkillsService exposes the global unique-skill list.
type SkillsService interface {
	GetAllSkills(ctx context.Context) ([]string, error)
}

type SkillsServiceImpl struct {
	logger *slog.Logger
	repo   SkillsRepo
	cache  *cache.Cache
}

func NewSkillsService(repo SkillsRepo, c *cache.Cache, logger *slog.Logger) *SkillsServiceImpl {
	return &SkillsServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  c,
	}
}

func (s *SkillsServiceImpl) GetAllSkills(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if cached, found := s.cache.Get(AllSkillsCacheKey); found {
			if names, ok := cached.([]string); ok {
				s.logger.DebugContext(ctx, "Serving skill list from cache", slog.Int("count", len(names)))
				return names, nil
			}
		}
	}

	names, err := s.repo.ListSkillNames(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(AllSkillsCacheKey, names, cache.DefaultExpiration)
	}

	return names, nil
}

package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillswaphq/skillswap/config"
	"github.com/skillswaphq/skillswap/internal/api"
	"github.com/skillswaphq/skillswap/internal/api/auth"
	"github.com/skillswaphq/skillswap/internal/api/profile"
	"github.com/skillswaphq/skillswap/internal/api/skills"
)

type stubProfileService struct {
	mock.Mock
}

func (m *stubProfileService) GetOwnProfile(ctx context.Context, callerID uuid.UUID) (*api.Account, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Account), args.Error(1)
}

func (m *stubProfileService) UpdateOwnProfile(ctx context.Context, callerID uuid.UUID, params api.UpdateProfileParams) (*api.Account, error) {
	args := m.Called(ctx, callerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Account), args.Error(1)
}

func (m *stubProfileService) GetPublicProfile(ctx context.Context, targetID uuid.UUID) (*api.Account, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Account), args.Error(1)
}

func (m *stubProfileService) FindMatches(ctx context.Context, callerID uuid.UUID) ([]api.Account, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Account), args.Error(1)
}

func (m *stubProfileService) RateAccount(ctx context.Context, raterID, targetID uuid.UUID, rating float64) (*api.Account, error) {
	args := m.Called(ctx, raterID, targetID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Account), args.Error(1)
}

type stubSkillsService struct {
	mock.Mock
}

func (m *stubSkillsService) GetAllSkills(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type stubAuthService struct {
	mock.Mock
}

func (m *stubAuthService) Register(ctx context.Context, name, email, password, location, role string) error {
	args := m.Called(ctx, name, email, password, location, role)
	return args.Error(0)
}

func (m *stubAuthService) Login(ctx context.Context, email, password string) (string, *api.UserSummary, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*api.UserSummary), args.Error(2)
}

func testRouter(t *testing.T, profileSvc profile.ProfileService, skillsSvc skills.SkillsService) (http.Handler, config.JWTConfig) {
	t.Helper()
	logger := slog.Default()
	jwtCfg := config.JWTConfig{
		SecretKey: "router-test-secret",
		TokenTTL:  7 * 24 * time.Hour,
		Issuer:    "test-issuer",
	}
	return SetupRouter(&Config{
		AuthHandler:            auth.NewAuthHandler(new(stubAuthService), logger),
		ProfileHandler:         profile.NewProfileHandler(profileSvc, logger),
		SkillsHandler:          skills.NewSkillsHandler(skillsSvc, logger),
		AuthenticateMiddleware: auth.Authenticate(logger, jwtCfg),
	}), jwtCfg
}

func tokenFor(t *testing.T, cfg config.JWTConfig, userID uuid.UUID) string {
	t.Helper()
	claims := api.Claims{
		UserID: userID.String(),
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey))
	require.NoError(t, err)
	return token
}

func TestRouting(t *testing.T) {
	t.Run("ProtectedRoutesRejectAnonymous", func(t *testing.T) {
		router, _ := testRouter(t, new(stubProfileService), new(stubSkillsService))

		for _, tc := range []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/profile/me"},
			{http.MethodPut, "/api/profile/me"},
			{http.MethodGet, "/api/profile/swap/match"},
			{http.MethodPost, "/api/profile/" + uuid.NewString() + "/rate"},
		} {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("MeWinsOverIDParam", func(t *testing.T) {
		// GET /api/profile/me must route to the protected own-profile handler,
		// not to the public {id} read with id="me".
		profileSvc := new(stubProfileService)
		router, jwtCfg := testRouter(t, profileSvc, new(stubSkillsService))

		callerID := uuid.New()
		account := &api.Account{ID: callerID, Name: "Alice"}
		profileSvc.On("GetOwnProfile", mock.Anything, callerID).Return(account, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtCfg, callerID))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		profileSvc.AssertExpectations(t)
		profileSvc.AssertNotCalled(t, "GetPublicProfile")
	})

	t.Run("PublicProfileReadNeedsNoToken", func(t *testing.T) {
		profileSvc := new(stubProfileService)
		router, _ := testRouter(t, profileSvc, new(stubSkillsService))

		targetID := uuid.New()
		account := &api.Account{ID: targetID, Name: "Bob"}
		profileSvc.On("GetPublicProfile", mock.Anything, targetID).Return(account, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/profile/"+targetID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		profileSvc.AssertExpectations(t)
	})

	t.Run("SkillsListIsPublic", func(t *testing.T) {
		skillsSvc := new(stubSkillsService)
		router, _ := testRouter(t, new(stubProfileService), skillsSvc)

		skillsSvc.On("GetAllSkills", mock.Anything).Return([]string{"Guitar"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/skills", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"skills":["Guitar"]}`, rr.Body.String())
	})

	t.Run("Ping", func(t *testing.T) {
		router, _ := testRouter(t, new(stubProfileService), new(stubSkillsService))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "pong", rr.Body.String())
	})
}

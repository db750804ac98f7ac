package profile

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswaphq/skillswap/internal/api"
)

var accountRowColumns = []string{
	"id", "name", "email", "password_hash", "location", "role", "private_account",
	"bio", "availability", "rating", "skills_offered", "skills_wanted", "created_at", "updated_at",
}

func accountRow(id uuid.UUID, name string, private bool, rating float64, offered, wanted []string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(accountRowColumns).
		AddRow(id, name, name+"@example.com", "hashed-pw", "Lisbon", "user", private,
			"", "", rating, offered, wanted, now, now)
}

func TestPostgresProfileRepo_GetByID(t *testing.T) {
	logger := slog.Default()

	t.Run("Found", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		id := uuid.New()

		mockPool.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(id).
			WillReturnRows(accountRow(id, "alice", false, 0, []string{"Guitar"}, []string{"Spanish"}))

		account, err := repo.GetByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, account.ID)
		assert.Equal(t, []string{"Guitar"}, account.SkillsOffered)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		id := uuid.New()

		mockPool.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		account, err := repo.GetByID(context.Background(), id)

		assert.Nil(t, account)
		assert.ErrorIs(t, err, api.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresProfileRepo_Update(t *testing.T) {
	logger := slog.Default()

	t.Run("OnlySuppliedFieldsInSetClause", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		id := uuid.New()
		name := "Mallory"

		// name plus the always-appended updated_at, nothing else.
		mockPool.ExpectQuery(`UPDATE users SET name = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(name, pgxmock.AnyArg(), id).
			WillReturnRows(accountRow(id, "Mallory", false, 0, nil, nil))

		account, err := repo.Update(context.Background(), id, api.UpdateProfileParams{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Mallory", account.Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NoFieldsFallsBackToSelect", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		id := uuid.New()

		mockPool.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(id).
			WillReturnRows(accountRow(id, "alice", false, 0, nil, nil))

		account, err := repo.Update(context.Background(), id, api.UpdateProfileParams{})

		require.NoError(t, err)
		assert.Equal(t, "alice", account.Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		id := uuid.New()
		bio := "hello"

		mockPool.ExpectQuery("UPDATE users SET").
			WithArgs(bio, pgxmock.AnyArg(), id).
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.Update(context.Background(), id, api.UpdateProfileParams{Bio: &bio})

		assert.ErrorIs(t, err, api.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresProfileRepo_FindMatches(t *testing.T) {
	logger := slog.Default()

	t.Run("ReturnsOverlappingAccounts", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		callerID := uuid.New()
		matchID := uuid.New()

		mockPool.ExpectQuery(`SELECT (.+) FROM users\s+WHERE skills_offered && \$1\s+AND skills_wanted && \$2\s+AND id <> \$3\s+AND private_account = FALSE`).
			WithArgs([]string{"Spanish"}, []string{"Guitar"}, callerID).
			WillReturnRows(accountRow(matchID, "bob", false, 3, []string{"Spanish"}, []string{"Guitar"}))

		matches, err := repo.FindMatches(context.Background(), []string{"Spanish"}, []string{"Guitar"}, callerID)

		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, matchID, matches[0].ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NoMatchesYieldsEmptySlice", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		callerID := uuid.New()

		mockPool.ExpectQuery("SELECT (.+) FROM users").
			WithArgs([]string{"Chess"}, []string{"Cooking"}, callerID).
			WillReturnRows(pgxmock.NewRows(accountRowColumns))

		matches, err := repo.FindMatches(context.Background(), []string{"Chess"}, []string{"Cooking"}, callerID)

		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresProfileRepo_UpdateRating(t *testing.T) {
	logger := slog.Default()

	t.Run("OverwritesAndReturnsAccount", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		id := uuid.New()

		mockPool.ExpectQuery(`UPDATE users SET rating = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(4.5, pgxmock.AnyArg(), id).
			WillReturnRows(accountRow(id, "bob", false, 4.5, nil, nil))

		account, err := repo.UpdateRating(context.Background(), id, 4.5)

		require.NoError(t, err)
		assert.Equal(t, 4.5, account.Rating)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		repo := NewPostgresProfileRepo(mockPool, logger)
		id := uuid.New()

		mockPool.ExpectQuery("UPDATE users SET rating").
			WithArgs(2.0, pgxmock.AnyArg(), id).
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.UpdateRating(context.Background(), id, 2.0)

		assert.ErrorIs(t, err, api.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

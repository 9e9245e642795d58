package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var challengeColumns = []string{"id", "user_id", "challenge_date", "template_key", "title", "description", "kind",
	"target", "progress", "xp_reward", "completed", "completed_at", "created_at"}

func challengeRow(c entity.Challenge) []any {
	return []any{c.ID, c.UserID, c.ChallengeDate, c.TemplateKey, c.Title, c.Description, c.Kind,
		c.Target, c.Progress, c.XPReward, c.Completed, c.CompletedAt, c.CreatedAt}
}

func TestCreateManyChallenges(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewChallengesRepoWithConn(mock)
	uid := uuid.New()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	challenges := []*entity.Challenge{
		{UserID: uid, ChallengeDate: day, TemplateKey: "write_entry", Title: "Write", Kind: "journal_entry", Target: 1, XPReward: 20},
		{UserID: uid, ChallengeDate: day, TemplateKey: "words_150", Title: "Words", Kind: "word_count", Target: 150, XPReward: 40},
	}
	query := regexp.QuoteMeta(`ON CONFLICT (user_id, challenge_date, template_key) DO NOTHING;`)

	t.Run("inserted", func(t *testing.T) {
		for _, c := range challenges {
			mock.ExpectExec(query).
				WithArgs(c.UserID, c.ChallengeDate, c.TemplateKey, c.Title, c.Description, c.Kind, c.Target, c.XPReward).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}
		assert.NoError(t, repo.CreateMany(context.Background(), challenges))
	})
	t.Run("unknown owner", func(t *testing.T) {
		c := challenges[0]
		mock.ExpectExec(query).
			WithArgs(c.UserID, c.ChallengeDate, c.TemplateKey, c.Title, c.Description, c.Kind, c.Target, c.XPReward).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		err := repo.CreateMany(context.Background(), challenges)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChallenges(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewChallengesRepoWithConn(mock)
	ctx := context.Background()
	c := entity.Challenge{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ChallengeDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TemplateKey:   "gratitude",
		Title:         "Three good things",
		Kind:          "reflection",
		Target:        3,
		Progress:      1,
		XPReward:      25,
	}
	t.Run("by id", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM challenges WHERE id = $1;`)).
			WithArgs(c.ID).
			WillReturnRows(pgxmock.NewRows(challengeColumns).AddRow(challengeRow(c)...))
		result, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, *result)
	})
	t.Run("for update not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM challenges WHERE id = $1 FOR UPDATE;`)).
			WithArgs(c.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetForUpdate(ctx, c.ID)
		assert.ErrorIs(t, err, errorvalues.ErrChallengeNotFound)
	})
	t.Run("by date", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM challenges WHERE user_id = $1 AND challenge_date = $2 ORDER BY template_key;`)).
			WithArgs(c.UserID, c.ChallengeDate).
			WillReturnRows(pgxmock.NewRows(challengeColumns).AddRow(challengeRow(c)...))
		result, err := repo.GetByDate(ctx, c.UserID, c.ChallengeDate)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "gratitude", result[0].TemplateKey)
	})
}

func TestUpdateChallenge(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewChallengesRepoWithConn(mock)
	now := time.Now()
	c := entity.Challenge{ID: uuid.New(), Progress: 3, Completed: true, CompletedAt: &now}
	query := regexp.QuoteMeta(`UPDATE challenges SET progress = $1, completed = $2, completed_at = $3 WHERE id = $4;`)

	mock.ExpectExec(query).WithArgs(3, true, &now, c.ID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.Update(context.Background(), &c))

	mock.ExpectExec(query).WithArgs(3, true, &now, c.ID).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Update(context.Background(), &c), errorvalues.ErrChallengeNotFound)

	mock.ExpectExec(query).WithArgs(3, true, &now, c.ID).WillReturnError(errors.New("db error"))
	assert.Error(t, repo.Update(context.Background(), &c))
}

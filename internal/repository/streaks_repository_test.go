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

func TestGetStreak(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewStreaksRepoWithConn(mock)
	ctx := context.Background()
	uid := uuid.New()
	last := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "current_streak", "longest_streak", "last_entry_date", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM streaks WHERE user_id = $1;`)).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(uuid.New(), uid, 5, 9, &last, time.Time{}, time.Time{}))
		s, err := repo.GetByUserID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, 5, s.CurrentStreak)
		assert.Equal(t, 9, s.LongestStreak)
		assert.Equal(t, last, *s.LastEntryDate)
	})
	t.Run("lazily absent", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM streaks WHERE user_id = $1 FOR UPDATE;`)).
			WithArgs(uid).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetForUpdate(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrStreakNotFound)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertStreak(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewStreaksRepoWithConn(mock)
	uid := uuid.New()
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`ON CONFLICT (user_id) DO UPDATE SET current_streak = EXCLUDED.current_streak`)
	testCases := []struct {
		Desc         string
		Streak       entity.Streak
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:   "longest raised to current before write",
			Streak: entity.Streak{UserID: uid, CurrentStreak: 6, LongestStreak: 5, LastEntryDate: &today},
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(uid, 6, 6, &today).
					WillReturnRows(pgxmock.NewRows([]string{"id", "longest_streak", "created_at", "updated_at"}).
						AddRow(uuid.New(), 6, time.Now(), time.Now()))
			},
		},
		{
			Desc:   "unknown user",
			Streak: entity.Streak{UserID: uid, CurrentStreak: 1, LongestStreak: 1, LastEntryDate: &today},
			Error:  errorvalues.ErrOwnerNotFound,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(uid, 1, 1, &today).WillReturnError(&pgconn.PgError{Code: "23503"})
			},
		},
		{
			Desc:   "db error",
			Streak: entity.Streak{UserID: uid, CurrentStreak: 1, LongestStreak: 1, LastEntryDate: &today},
			Error:  errors.New("upserting streak error: db error"),
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(uid, 1, 1, &today).WillReturnError(errors.New("db error"))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			s := tc.Streak
			err := repo.Upsert(context.Background(), &s)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, s.LongestStreak, s.CurrentStreak)
			}
		})
	}
}

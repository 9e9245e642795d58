package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/pkg/entity"
)

type StreaksRepository struct {
	conn PgConnection
}

func NewStreaksRepoWithConn(conn PgConnection) *StreaksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for streaksRepo: " + err.Error())
	}
	return &StreaksRepository{
		conn: conn,
	}
}

func (sr *StreaksRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Streak, error) {
	return sr.get(ctx, `SELECT id, user_id, current_streak, longest_streak, last_entry_date, created_at, updated_at
		FROM streaks WHERE user_id = $1;`, uid)
}

func (sr *StreaksRepository) GetForUpdate(ctx context.Context, uid uuid.UUID) (*entity.Streak, error) {
	return sr.get(ctx, `SELECT id, user_id, current_streak, longest_streak, last_entry_date, created_at, updated_at
		FROM streaks WHERE user_id = $1 FOR UPDATE;`, uid)
}

func (sr *StreaksRepository) get(ctx context.Context, query string, uid uuid.UUID) (*entity.Streak, error) {
	var s entity.Streak
	row := executor(ctx, sr.conn).QueryRow(ctx, query, uid)
	err := row.Scan(&s.ID, &s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.LastEntryDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrStreakNotFound
		}
		return nil, errors.New("getting streak error: " + err.Error())
	}
	return &s, nil
}

func (sr *StreaksRepository) Upsert(ctx context.Context, streak *entity.Streak) error {
	if streak == nil {
		return errors.New("streak is nil")
	}
	if streak.LongestStreak < streak.CurrentStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	row := executor(ctx, sr.conn).QueryRow(ctx, `INSERT INTO streaks (user_id, current_streak, longest_streak, last_entry_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET current_streak = EXCLUDED.current_streak,
			longest_streak = GREATEST(streaks.longest_streak, EXCLUDED.longest_streak),
			last_entry_date = EXCLUDED.last_entry_date, updated_at = NOW()
		RETURNING id, longest_streak, created_at, updated_at;`,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.LastEntryDate,
	)
	if err := row.Scan(&streak.ID, &streak.LongestStreak, &streak.CreatedAt, &streak.UpdatedAt); err != nil {
		if mapped := translatePgError(err, nil, errorvalues.ErrOwnerNotFound); mapped != nil {
			return mapped
		}
		return errors.New("upserting streak error: " + err.Error())
	}
	return nil
}

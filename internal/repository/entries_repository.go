package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/pkg/entity"
)

type EntriesRepository struct {
	conn PgConnection
}

func NewEntriesRepoWithConn(conn PgConnection) *EntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	return &EntriesRepository{
		conn: conn,
	}
}

func scanEntry(row pgx.Row, e *entity.Entry) error {
	return row.Scan(
		&e.ID,
		&e.UserID,
		&e.EntryDate,
		&e.Mood,
		&e.Notes,
		&e.Tags,
		&e.WordCount,
		&e.XPAwarded,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

func (er *EntriesRepository) Create(ctx context.Context, entry *entity.Entry) error {
	if entry == nil {
		return errors.New("entry is nil")
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	row := executor(ctx, er.conn).QueryRow(ctx, `INSERT INTO entries (user_id, entry_date, mood, notes, tags, word_count, xp_awarded)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at;`,
		entry.UserID,
		entry.EntryDate,
		entry.Mood,
		entry.Notes,
		entry.Tags,
		entry.WordCount,
		entry.XPAwarded,
	)
	if err := row.Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		if mapped := translatePgError(err, errorvalues.ErrEntryExists, errorvalues.ErrOwnerNotFound); mapped != nil {
			return mapped
		}
		return errors.New("creating entry db error: " + err.Error())
	}
	return nil
}

func (er *EntriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	var entry entity.Entry
	row := executor(ctx, er.conn).QueryRow(ctx, `SELECT id, user_id, entry_date, mood, notes, tags, word_count, xp_awarded, created_at, updated_at
		FROM entries WHERE id = $1;`, id)
	if err := scanEntry(row, &entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrEntryNotFound
		}
		return nil, errors.New("getting entry by id error: " + err.Error())
	}
	return &entry, nil
}

func (er *EntriesRepository) GetByDate(ctx context.Context, uid uuid.UUID, date time.Time) (*entity.Entry, error) {
	var entry entity.Entry
	row := executor(ctx, er.conn).QueryRow(ctx, `SELECT id, user_id, entry_date, mood, notes, tags, word_count, xp_awarded, created_at, updated_at
		FROM entries WHERE user_id = $1 AND entry_date = $2;`, uid, date)
	if err := scanEntry(row, &entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrEntryNotFound
		}
		return nil, errors.New("getting entry by date error: " + err.Error())
	}
	return &entry, nil
}

func (er *EntriesRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Entry, error) {
	entries := make([]*entity.Entry, 0)
	rows, err := executor(ctx, er.conn).Query(ctx, `SELECT id, user_id, entry_date, mood, notes, tags, word_count, xp_awarded, created_at, updated_at
		FROM entries WHERE user_id = $1 ORDER BY entry_date DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting entries by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		e := entity.Entry{}
		if err = scanEntry(rows, &e); err != nil {
			return nil, errors.New("unmarshalling entry error: " + err.Error())
		}
		entries = append(entries, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return entries, nil
}

func (er *EntriesRepository) Update(ctx context.Context, entry *entity.Entry) error {
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	ct, err := executor(ctx, er.conn).Exec(ctx, `UPDATE entries SET mood = $1, notes = $2, tags = $3, word_count = $4, updated_at = NOW() WHERE id = $5;`,
		entry.Mood, entry.Notes, entry.Tags, entry.WordCount, entry.ID,
	)
	if err != nil {
		return errors.New("updating entry error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEntryNotFound
	}
	return nil
}

func (er *EntriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := executor(ctx, er.conn).Exec(ctx, `DELETE FROM entries WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting entry error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEntryNotFound
	}
	return nil
}

func (er *EntriesRepository) MoodSeries(ctx context.Context, uid uuid.UUID, from time.Time) ([]entity.MoodPoint, error) {
	points := make([]entity.MoodPoint, 0)
	rows, err := executor(ctx, er.conn).Query(ctx, `SELECT entry_date, mood FROM entries
		WHERE user_id = $1 AND entry_date >= $2 ORDER BY entry_date;`, uid, from)
	if err != nil {
		return nil, errors.New("getting mood series error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.MoodPoint
		if err = rows.Scan(&p.Date, &p.Mood); err != nil {
			return nil, errors.New("unmarshalling mood point error: " + err.Error())
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return points, nil
}

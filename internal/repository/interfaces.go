package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/lumin/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database. ID and CreatedAt are filled from the stored row
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Lists users page by page, ordered by creation time
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// Updates user's profile info (name, email, timezone)
	Update(ctx context.Context, user *entity.User) error
	// Deletes user with all owned rows
	Delete(ctx context.Context, uid uuid.UUID) error
	// Atomically increments xp and returns the new total
	AddXP(ctx context.Context, uid uuid.UUID, amount int) (int, error)
	SetLevel(ctx context.Context, uid uuid.UUID, level int) error
	// Mirrors current streak into the user row
	SetStreak(ctx context.Context, uid uuid.UUID, streak int) error
	// Appends badges that are not owned yet
	AddBadges(ctx context.Context, uid uuid.UUID, badges []string) error
	// Collects counters used for badge evaluation
	Stats(ctx context.Context, uid uuid.UUID) (*entity.UserStats, error)
}

type EntriesRepositoryI interface {
	// Creates new entry. Only one entry per user per date is allowed
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)
	// Searches entry written by user on the given calendar date
	GetByDate(ctx context.Context, uid uuid.UUID, date time.Time) (*entity.Entry, error)
	// Lists entries of user, newest first. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Entry, error)
	// Updates mood, notes, tags and word count by ID
	Update(ctx context.Context, entry *entity.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Returns mood values of entries written since the given date, oldest first
	MoodSeries(ctx context.Context, uid uuid.UUID, from time.Time) ([]entity.MoodPoint, error)
}

type GoalsRepositoryI interface {
	Create(ctx context.Context, goal *entity.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Same as GetByID, but locks the row until the end of the transaction
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Lists goals of user. Empty status means any status
	GetByUserID(ctx context.Context, uid uuid.UUID, status entity.GoalStatus, limit, offset int) ([]*entity.Goal, error)
	// Updates every mutable field of the goal by ID
	Update(ctx context.Context, goal *entity.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StreaksRepositoryI interface {
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Streak, error)
	// Same as GetByUserID, but locks the row until the end of the transaction
	GetForUpdate(ctx context.Context, uid uuid.UUID) (*entity.Streak, error)
	// Creates streak row on first use, updates it afterwards
	Upsert(ctx context.Context, streak *entity.Streak) error
}

type ChallengesRepositoryI interface {
	// Inserts challenges, silently skipping ones already generated for the day
	CreateMany(ctx context.Context, challenges []*entity.Challenge) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Challenge, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Challenge, error)
	// Lists challenges of user for the given calendar date
	GetByDate(ctx context.Context, uid uuid.UUID, date time.Time) ([]*entity.Challenge, error)
	// Updates progress and completion state by ID
	Update(ctx context.Context, challenge *entity.Challenge) error
}

// TransactorI runs fn inside a database transaction. Repositories called with
// the ctx passed to fn take part in that transaction.
type TransactorI interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

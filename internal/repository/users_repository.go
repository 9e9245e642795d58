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

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func scanUser(row pgx.Row, user *entity.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.XP,
		&user.Level,
		&user.Streak,
		&user.Badges,
		&user.Timezone,
		&user.CreatedAt,
	)
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	row := executor(ctx, ur.conn).QueryRow(ctx, `INSERT INTO users (name, email, password_hash, timezone)
		VALUES ($1, NULLIF($2, ''), $3, $4) RETURNING id, xp, level, created_at;`,
		user.Name, user.Email, user.PasswordHash, user.Timezone)
	if err := row.Scan(&user.ID, &user.XP, &user.Level, &user.CreatedAt); err != nil {
		if mapped := translatePgError(err, errorvalues.ErrUserExists, nil); mapped != nil {
			return mapped
		}
		return errors.New("creating user db error: " + err.Error())
	}
	return nil
}

func (ur *UsersRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	var user entity.User
	row := executor(ctx, ur.conn).QueryRow(ctx, `SELECT id, name, COALESCE(email, ''), password_hash, xp, level, streak, badges, timezone, created_at
		FROM users WHERE name = $1;`, name)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by name error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	var user entity.User
	row := executor(ctx, ur.conn).QueryRow(ctx, `SELECT id, name, COALESCE(email, ''), password_hash, xp, level, streak, badges, timezone, created_at
		FROM users WHERE id = $1;`, uid)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	rows, err := executor(ctx, ur.conn).Query(ctx, `SELECT id, name, COALESCE(email, ''), password_hash, xp, level, streak, badges, timezone, created_at
		FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, errors.New("listing users error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		u := entity.User{}
		if err = scanUser(rows, &u); err != nil {
			return nil, errors.New("unmarshalling user error: " + err.Error())
		}
		users = append(users, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return users, nil
}

func (ur *UsersRepository) Update(ctx context.Context, user *entity.User) error {
	ct, err := executor(ctx, ur.conn).Exec(ctx, `UPDATE users SET name = $1, email = NULLIF($2, ''), timezone = $3 WHERE id = $4;`,
		user.Name,
		user.Email,
		user.Timezone,
		user.ID,
	)
	if err != nil {
		if mapped := translatePgError(err, errorvalues.ErrUserExists, nil); mapped != nil {
			return mapped
		}
		return errors.New("updating user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	ct, err := executor(ctx, ur.conn).Exec(ctx, `DELETE FROM users WHERE id = $1;`, uid)
	if err != nil {
		return errors.New("deleting user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) AddXP(ctx context.Context, uid uuid.UUID, amount int) (int, error) {
	var xp int
	row := executor(ctx, ur.conn).QueryRow(ctx, `UPDATE users SET xp = xp + $1 WHERE id = $2 RETURNING xp;`, amount, uid)
	if err := row.Scan(&xp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errorvalues.ErrUserNotFound
		}
		return 0, errors.New("adding xp error: " + err.Error())
	}
	return xp, nil
}

func (ur *UsersRepository) SetLevel(ctx context.Context, uid uuid.UUID, level int) error {
	ct, err := executor(ctx, ur.conn).Exec(ctx, `UPDATE users SET level = $1 WHERE id = $2;`, level, uid)
	if err != nil {
		return errors.New("setting level error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) SetStreak(ctx context.Context, uid uuid.UUID, streak int) error {
	ct, err := executor(ctx, ur.conn).Exec(ctx, `UPDATE users SET streak = $1 WHERE id = $2;`, streak, uid)
	if err != nil {
		return errors.New("setting streak error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) AddBadges(ctx context.Context, uid uuid.UUID, badges []string) error {
	if len(badges) == 0 {
		return nil
	}
	ct, err := executor(ctx, ur.conn).Exec(ctx, `UPDATE users SET badges = badges || ARRAY(
		SELECT b FROM unnest($1::text[]) AS b WHERE NOT b = ANY(badges)) WHERE id = $2;`, badges, uid)
	if err != nil {
		return errors.New("adding badges error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) Stats(ctx context.Context, uid uuid.UUID) (*entity.UserStats, error) {
	var stats entity.UserStats
	row := executor(ctx, ur.conn).QueryRow(ctx, `SELECT u.level,
		(SELECT COUNT(*) FROM entries e WHERE e.user_id = u.id),
		COALESCE(s.current_streak, 0),
		COALESCE(s.longest_streak, 0),
		(SELECT COUNT(*) FROM goals g WHERE g.user_id = u.id AND g.status = 'completed'),
		(SELECT COUNT(*) FROM challenges c WHERE c.user_id = u.id AND c.completed)
		FROM users u LEFT JOIN streaks s ON s.user_id = u.id WHERE u.id = $1;`, uid)
	err := row.Scan(
		&stats.Level,
		&stats.Entries,
		&stats.CurrentStreak,
		&stats.LongestStreak,
		&stats.GoalsCompleted,
		&stats.ChallengesCompleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("collecting user stats error: " + err.Error())
	}
	return &stats, nil
}

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

type ChallengesRepository struct {
	conn PgConnection
}

func NewChallengesRepoWithConn(conn PgConnection) *ChallengesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for challengesRepo: " + err.Error())
	}
	return &ChallengesRepository{
		conn: conn,
	}
}

func scanChallenge(row pgx.Row, c *entity.Challenge) error {
	return row.Scan(
		&c.ID,
		&c.UserID,
		&c.ChallengeDate,
		&c.TemplateKey,
		&c.Title,
		&c.Description,
		&c.Kind,
		&c.Target,
		&c.Progress,
		&c.XPReward,
		&c.Completed,
		&c.CompletedAt,
		&c.CreatedAt,
	)
}

func (cr *ChallengesRepository) CreateMany(ctx context.Context, challenges []*entity.Challenge) error {
	q := executor(ctx, cr.conn)
	for _, c := range challenges {
		_, err := q.Exec(ctx, `INSERT INTO challenges (user_id, challenge_date, template_key, title, description, kind, target, xp_reward)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (user_id, challenge_date, template_key) DO NOTHING;`,
			c.UserID,
			c.ChallengeDate,
			c.TemplateKey,
			c.Title,
			c.Description,
			c.Kind,
			c.Target,
			c.XPReward,
		)
		if err != nil {
			if mapped := translatePgError(err, nil, errorvalues.ErrOwnerNotFound); mapped != nil {
				return mapped
			}
			return errors.New("creating challenge db error: " + err.Error())
		}
	}
	return nil
}

func (cr *ChallengesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Challenge, error) {
	return cr.get(ctx, `SELECT id, user_id, challenge_date, template_key, title, description, kind, target, progress, xp_reward, completed, completed_at, created_at
		FROM challenges WHERE id = $1;`, id)
}

func (cr *ChallengesRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Challenge, error) {
	return cr.get(ctx, `SELECT id, user_id, challenge_date, template_key, title, description, kind, target, progress, xp_reward, completed, completed_at, created_at
		FROM challenges WHERE id = $1 FOR UPDATE;`, id)
}

func (cr *ChallengesRepository) get(ctx context.Context, query string, id uuid.UUID) (*entity.Challenge, error) {
	var c entity.Challenge
	row := executor(ctx, cr.conn).QueryRow(ctx, query, id)
	if err := scanChallenge(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrChallengeNotFound
		}
		return nil, errors.New("getting challenge by id error: " + err.Error())
	}
	return &c, nil
}

func (cr *ChallengesRepository) GetByDate(ctx context.Context, uid uuid.UUID, date time.Time) ([]*entity.Challenge, error) {
	challenges := make([]*entity.Challenge, 0)
	rows, err := executor(ctx, cr.conn).Query(ctx, `SELECT id, user_id, challenge_date, template_key, title, description, kind, target, progress, xp_reward, completed, completed_at, created_at
		FROM challenges WHERE user_id = $1 AND challenge_date = $2 ORDER BY template_key;`, uid, date)
	if err != nil {
		return nil, errors.New("getting challenges by date error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		c := entity.Challenge{}
		if err = scanChallenge(rows, &c); err != nil {
			return nil, errors.New("unmarshalling challenge error: " + err.Error())
		}
		challenges = append(challenges, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return challenges, nil
}

func (cr *ChallengesRepository) Update(ctx context.Context, challenge *entity.Challenge) error {
	ct, err := executor(ctx, cr.conn).Exec(ctx, `UPDATE challenges SET progress = $1, completed = $2, completed_at = $3 WHERE id = $4;`,
		challenge.Progress, challenge.Completed, challenge.CompletedAt, challenge.ID,
	)
	if err != nil {
		return errors.New("updating challenge error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrChallengeNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/pkg/entity"
)

type GoalsRepository struct {
	conn PgConnection
}

func NewGoalsRepoWithConn(conn PgConnection) *GoalsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	return &GoalsRepository{
		conn: conn,
	}
}

func marshalMilestones(ms []entity.Milestone) ([]byte, error) {
	if ms == nil {
		ms = []entity.Milestone{}
	}
	data, err := sonic.Marshal(ms)
	if err != nil {
		return nil, errors.New("marshalling milestones error: " + err.Error())
	}
	return data, nil
}

func scanGoal(row pgx.Row, g *entity.Goal) error {
	var milestones []byte
	var status string
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.Category,
		&g.CurrentValue,
		&g.TargetValue,
		&g.Unit,
		&milestones,
		&status,
		&g.Deadline,
		&g.XPReward,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return err
	}
	g.Status = entity.GoalStatus(status)
	g.Milestones = []entity.Milestone{}
	if len(milestones) > 0 {
		if err = sonic.Unmarshal(milestones, &g.Milestones); err != nil {
			return errors.New("unmarshalling milestones error: " + err.Error())
		}
	}
	return nil
}

func (gr *GoalsRepository) Create(ctx context.Context, goal *entity.Goal) error {
	if goal == nil {
		return errors.New("goal is nil")
	}
	milestones, err := marshalMilestones(goal.Milestones)
	if err != nil {
		return err
	}
	row := executor(ctx, gr.conn).QueryRow(ctx, `INSERT INTO goals (user_id, title, description, category, current_value, target_value, unit, milestones, status, deadline, xp_reward)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at;`,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.CurrentValue,
		goal.TargetValue,
		goal.Unit,
		milestones,
		string(goal.Status),
		goal.Deadline,
		goal.XPReward,
	)
	if err = row.Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt); err != nil {
		if mapped := translatePgError(err, nil, errorvalues.ErrOwnerNotFound); mapped != nil {
			return mapped
		}
		return errors.New("creating goal db error: " + err.Error())
	}
	return nil
}

func (gr *GoalsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return gr.get(ctx, `SELECT id, user_id, title, description, category, current_value, target_value, unit, milestones, status, deadline, xp_reward, created_at, updated_at
		FROM goals WHERE id = $1;`, id)
}

func (gr *GoalsRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return gr.get(ctx, `SELECT id, user_id, title, description, category, current_value, target_value, unit, milestones, status, deadline, xp_reward, created_at, updated_at
		FROM goals WHERE id = $1 FOR UPDATE;`, id)
}

func (gr *GoalsRepository) get(ctx context.Context, query string, id uuid.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	row := executor(ctx, gr.conn).QueryRow(ctx, query, id)
	if err := scanGoal(row, &goal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrGoalNotFound
		}
		return nil, errors.New("getting goal by id error: " + err.Error())
	}
	return &goal, nil
}

func (gr *GoalsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, status entity.GoalStatus, limit, offset int) ([]*entity.Goal, error) {
	goals := make([]*entity.Goal, 0)
	rows, err := executor(ctx, gr.conn).Query(ctx, `SELECT id, user_id, title, description, category, current_value, target_value, unit, milestones, status, deadline, xp_reward, created_at, updated_at
		FROM goals WHERE user_id = $1 AND ($2 = '' OR status = $2) ORDER BY created_at DESC LIMIT $3 OFFSET $4;`,
		uid, string(status), limit, offset)
	if err != nil {
		return nil, errors.New("getting goals by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		g := entity.Goal{}
		if err = scanGoal(rows, &g); err != nil {
			return nil, errors.New("unmarshalling goal error: " + err.Error())
		}
		goals = append(goals, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return goals, nil
}

func (gr *GoalsRepository) Update(ctx context.Context, goal *entity.Goal) error {
	milestones, err := marshalMilestones(goal.Milestones)
	if err != nil {
		return err
	}
	ct, err := executor(ctx, gr.conn).Exec(ctx, `UPDATE goals SET title = $1, description = $2, category = $3, current_value = $4, target_value = $5,
		unit = $6, milestones = $7, status = $8, deadline = $9, xp_reward = $10, updated_at = NOW() WHERE id = $11;`,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.CurrentValue,
		goal.TargetValue,
		goal.Unit,
		milestones,
		string(goal.Status),
		goal.Deadline,
		goal.XPReward,
		goal.ID,
	)
	if err != nil {
		return errors.New("updating goal error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}

func (gr *GoalsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := executor(ctx, gr.conn).Exec(ctx, `DELETE FROM goals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting goal error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}

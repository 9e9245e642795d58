package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runningGoal() *service.GoalRequest {
	return &service.GoalRequest{
		Title:       "Run a half marathon",
		Category:    "health",
		TargetValue: 21,
		Unit:        "km",
		Milestones: []service.MilestoneRequest{
			{Title: "5k", TargetValue: 5},
			{Title: "10k", TargetValue: 10, XPReward: 40},
			{Title: "15k", TargetValue: 15},
		},
	}
}

func TestCreateGoal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("runner", "")
	testCases := []struct {
		Desc  string
		Req   *service.GoalRequest
		UID   uuid.UUID
		Error error
	}{
		{Desc: "created with defaults", Req: runningGoal(), UID: user.ID},
		{Desc: "zero target", Req: &service.GoalRequest{Title: "Nothing"}, UID: user.ID, Error: errorvalues.ErrValidation},
		{Desc: "missing title", Req: &service.GoalRequest{TargetValue: 3}, UID: user.ID, Error: errorvalues.ErrValidation},
		{
			Desc:  "invalid milestone",
			Req:   &service.GoalRequest{Title: "Read", TargetValue: 10, Milestones: []service.MilestoneRequest{{Title: "half", TargetValue: 0}}},
			UID:   user.ID,
			Error: errorvalues.ErrValidation,
		},
		{Desc: "unknown owner", Req: runningGoal(), UID: uuid.New(), Error: errorvalues.ErrUserNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			goal, err := e.goals.Create(ctx, tc.UID, tc.Req)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.GoalActive, goal.Status)
			assert.Equal(t, gamification.DefaultGoalXP, goal.XPReward)
			require.Len(t, goal.Milestones, 3)
			assert.Equal(t, gamification.DefaultMilestone, goal.Milestones[0].XPReward)
			assert.Equal(t, 40, goal.Milestones[1].XPReward)
		})
	}
}

func TestUpdateGoalProgress(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("runner", "")
	// keeps today's challenge set fixed so that only goal rewards count
	addChallenge(e, user.ID, gamification.KindReflection, 1, 20)
	goal, err := e.goals.Create(ctx, user.ID, runningGoal())
	require.NoError(t, err)

	t.Run("reached milestones complete", func(t *testing.T) {
		res, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, 12)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, res.CompletedMilestones)
		assert.False(t, res.GoalCompleted)
		require.NotNil(t, res.Award)
		assert.Equal(t, gamification.DefaultMilestone+40, res.Award.Amount)
		assert.Equal(t, gamification.DefaultMilestone+40, user.XP)
		assert.NotNil(t, res.Goal.Milestones[0].CompletedAt)
	})
	t.Run("same value awards nothing", func(t *testing.T) {
		res, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, 12)
		require.NoError(t, err)
		assert.Empty(t, res.CompletedMilestones)
		assert.Nil(t, res.Award)
	})
	t.Run("negative value", func(t *testing.T) {
		_, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, -1)
		assert.ErrorIs(t, err, errorvalues.ErrInvalidProgress)
	})
	t.Run("target completes the goal", func(t *testing.T) {
		before := user.XP
		res, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, 21)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, res.CompletedMilestones)
		assert.True(t, res.GoalCompleted)
		assert.Equal(t, entity.GoalCompleted, res.Goal.Status)
		assert.Equal(t, gamification.DefaultMilestone+gamification.DefaultGoalXP, res.Award.Amount)
		assert.Equal(t, before, res.Award.XPBefore)
		assert.Equal(t, user.XP, res.Award.XPAfter)
		assert.Contains(t, res.Award.NewBadges, "first_goal")
		assertLevelMatchesXP(t, user)
	})
	t.Run("completed goal takes no progress", func(t *testing.T) {
		_, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, 30)
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotActive)
	})
}

func TestCompleteMilestone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("runner", "")
	stranger := e.db.addUser("stranger", "")
	goal, err := e.goals.Create(ctx, user.ID, runningGoal())
	require.NoError(t, err)

	testCases := []struct {
		Desc   string
		UID    uuid.UUID
		Index  int
		Amount int
		Error  error
	}{
		{Desc: "completed", UID: user.ID, Index: 1, Amount: 40},
		{Desc: "idempotent", UID: user.ID, Index: 1},
		{Desc: "index out of range", UID: user.ID, Index: 3, Error: errorvalues.ErrMilestoneNotFound},
		{Desc: "negative index", UID: user.ID, Index: -1, Error: errorvalues.ErrMilestoneNotFound},
		{Desc: "foreign goal", UID: stranger.ID, Index: 0, Error: errorvalues.ErrWrongOwner},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			res, err := e.goals.CompleteMilestone(ctx, tc.UID, goal.ID, tc.Index)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.Goal.Milestones[tc.Index].Completed)
			if tc.Amount == 0 {
				assert.Nil(t, res.Award)
				return
			}
			require.NotNil(t, res.Award)
			assert.Equal(t, tc.Amount, res.Award.Amount)
		})
	}
	assert.Equal(t, 40, user.XP)
}

func TestCompleteLastMilestoneCompletesGoal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("finisher", "")
	goal, err := e.goals.Create(ctx, user.ID, runningGoal())
	require.NoError(t, err)

	for _, i := range []int{0, 2} {
		res, err := e.goals.CompleteMilestone(ctx, user.ID, goal.ID, i)
		require.NoError(t, err)
		assert.False(t, res.GoalCompleted)
		assert.Equal(t, entity.GoalActive, res.Goal.Status)
	}
	xp := user.XP

	res, err := e.goals.CompleteMilestone(ctx, user.ID, goal.ID, 1)
	require.NoError(t, err)
	assert.True(t, res.GoalCompleted)
	assert.Equal(t, entity.GoalCompleted, res.Goal.Status)
	require.NotNil(t, res.Award)
	assert.Equal(t, 40+gamification.DefaultGoalXP, res.Award.Amount)
	assert.Equal(t, xp+40+gamification.DefaultGoalXP, user.XP)

	t.Run("repeated call awards nothing", func(t *testing.T) {
		res, err := e.goals.CompleteMilestone(ctx, user.ID, goal.ID, 1)
		require.NoError(t, err)
		assert.Nil(t, res.Award)
		assert.Equal(t, xp+40+gamification.DefaultGoalXP, user.XP)
	})
	t.Run("completed goal takes no progress", func(t *testing.T) {
		_, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, 5)
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotActive)
	})
}

func TestGoalCRUD(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("planner", "")
	stranger := e.db.addUser("stranger", "")
	goal, err := e.goals.Create(ctx, user.ID, runningGoal())
	require.NoError(t, err)
	_, err = e.goals.CompleteMilestone(ctx, user.ID, goal.ID, 0)
	require.NoError(t, err)

	t.Run("update keeps completed milestones", func(t *testing.T) {
		req := runningGoal()
		req.Title = "Run a marathon"
		req.TargetValue = 42
		req.Status = entity.GoalPaused
		req.Milestones = append(req.Milestones, service.MilestoneRequest{Title: "30k", TargetValue: 30})
		updated, err := e.goals.Update(ctx, user.ID, goal.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "Run a marathon", updated.Title)
		assert.Equal(t, entity.GoalPaused, updated.Status)
		require.Len(t, updated.Milestones, 4)
		assert.True(t, updated.Milestones[0].Completed)
		assert.False(t, updated.Milestones[3].Completed)
	})
	t.Run("paused goal takes no progress", func(t *testing.T) {
		_, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, 3)
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotActive)
	})
	t.Run("completed status cannot be set by update", func(t *testing.T) {
		req := runningGoal()
		req.Status = entity.GoalCompleted
		_, err := e.goals.Update(ctx, user.ID, goal.ID, req)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("list by status", func(t *testing.T) {
		paused, err := e.goals.List(ctx, user.ID, entity.GoalPaused, service.PaginationOpts{})
		require.NoError(t, err)
		assert.Len(t, paused, 1)
		active, err := e.goals.List(ctx, user.ID, entity.GoalActive, service.PaginationOpts{})
		require.NoError(t, err)
		assert.Empty(t, active)
		_, err = e.goals.List(ctx, user.ID, "finished", service.PaginationOpts{})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("foreign goal is hidden", func(t *testing.T) {
		_, err := e.goals.Get(ctx, stranger.ID, goal.ID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		err = e.goals.Delete(ctx, stranger.ID, goal.ID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("deleted", func(t *testing.T) {
		require.NoError(t, e.goals.Delete(ctx, user.ID, goal.ID))
		_, err := e.goals.Get(ctx, user.ID, goal.ID)
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotFound)
	})
}

func TestGoalProgressAdvancesChallenge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("runner", "")
	step := addChallenge(e, user.ID, gamification.KindGoalProgress, 1, 30)
	goal, err := e.goals.Create(ctx, user.ID, &service.GoalRequest{Title: "Read books", TargetValue: 12})
	require.NoError(t, err)

	res, err := e.goals.UpdateProgress(ctx, user.ID, goal.ID, 1)
	require.NoError(t, err)
	require.Len(t, res.Challenges, 1)
	assert.Equal(t, step.ID, res.Challenges[0].Challenge.ID)
	assert.Equal(t, 30, user.XP)
}

package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/streak"
	"github.com/limbo/lumin/pkg/entity"
)

type GoalService struct {
	tx         repository.TransactorI
	users      repository.UsersRepositoryI
	goals      repository.GoalsRepositoryI
	awarder    Awarder
	challenges *ChallengeService
	calendar   *streak.Calendar
	cache      *DashboardCache
}

type GoalServiceOpts struct {
	Transactor repository.TransactorI
	UsersRepo  repository.UsersRepositoryI
	GoalsRepo  repository.GoalsRepositoryI
	Awarder    Awarder
	// Optional. Without it goal progress does not advance daily challenges
	Challenges *ChallengeService
	Calendar   *streak.Calendar
	Cache      *DashboardCache
}

func NewGoalService(opts GoalServiceOpts) *GoalService {
	if opts.Transactor == nil || opts.UsersRepo == nil || opts.GoalsRepo == nil || opts.Awarder == nil {
		log.Fatal("on goal service provided nil dependencies")
	}
	if opts.Calendar == nil {
		opts.Calendar = streak.NewCalendar(nil, nil)
	}
	return &GoalService{
		tx:         opts.Transactor,
		users:      opts.UsersRepo,
		goals:      opts.GoalsRepo,
		awarder:    opts.Awarder,
		challenges: opts.Challenges,
		calendar:   opts.Calendar,
		cache:      opts.Cache,
	}
}

func milestonesOf(req []MilestoneRequest) []entity.Milestone {
	ms := make([]entity.Milestone, 0, len(req))
	for _, m := range req {
		xp := m.XPReward
		if xp == 0 {
			xp = gamification.DefaultMilestone
		}
		ms = append(ms, entity.Milestone{
			Title:       m.Title,
			TargetValue: m.TargetValue,
			XPReward:    xp,
		})
	}
	return ms
}

func (gs *GoalService) Create(ctx context.Context, uid uuid.UUID, req *GoalRequest) (*entity.Goal, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	xp := req.XPReward
	if xp == 0 {
		xp = gamification.DefaultGoalXP
	}
	goal := entity.Goal{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		Milestones:  milestonesOf(req.Milestones),
		Status:      entity.GoalActive,
		Deadline:    req.Deadline,
		XPReward:    xp,
	}
	err := gs.goals.Create(ctx, &goal)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	gs.cache.drop(ctx, uid)
	return &goal, nil
}

func (gs *GoalService) Get(ctx context.Context, uid, id uuid.UUID) (*entity.Goal, error) {
	goal, err := gs.goals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return goal, nil
}

func (gs *GoalService) List(ctx context.Context, uid uuid.UUID, status entity.GoalStatus, pagination PaginationOpts) ([]*entity.Goal, error) {
	if status != "" && !status.Valid() {
		return nil, errors.Join(errorvalues.ErrValidation, errors.New("unknown goal status: "+string(status)))
	}
	pagination = normalizePagination(pagination)
	goals, err := gs.goals.GetByUserID(ctx, uid, status, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goals, nil
}

// lock loads the goal FOR UPDATE and checks its owner.
func (gs *GoalService) lock(ctx context.Context, uid, id uuid.UUID) (*entity.Goal, error) {
	goal, err := gs.goals.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return goal, nil
}

func (gs *GoalService) save(ctx context.Context, goal *entity.Goal) error {
	err := gs.goals.Update(ctx, goal)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	return nil
}

// Update replaces the goal's details. Milestones are replaced only when the
// request carries them; completion marks of milestones with the same title
// are preserved. A completed goal keeps its status.
func (gs *GoalService) Update(ctx context.Context, uid, id uuid.UUID, req *GoalRequest) (*entity.Goal, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var goal *entity.Goal
	err := gs.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		goal, err = gs.lock(ctx, uid, id)
		if err != nil {
			return err
		}
		goal.Title = req.Title
		goal.Description = req.Description
		goal.Category = req.Category
		goal.TargetValue = req.TargetValue
		goal.Unit = req.Unit
		goal.Deadline = req.Deadline
		if req.XPReward > 0 {
			goal.XPReward = req.XPReward
		}
		if req.Milestones != nil {
			goal.Milestones = mergeMilestones(goal.Milestones, milestonesOf(req.Milestones))
		}
		if req.Status != "" && goal.Status != entity.GoalCompleted {
			goal.Status = req.Status
		}
		return gs.save(ctx, goal)
	})
	if err != nil {
		return nil, err
	}
	gs.cache.drop(ctx, uid)
	return goal, nil
}

func mergeMilestones(old, updated []entity.Milestone) []entity.Milestone {
	done := make(map[string]entity.Milestone, len(old))
	for _, m := range old {
		if m.Completed {
			done[m.Title] = m
		}
	}
	for i, m := range updated {
		if prev, ok := done[m.Title]; ok {
			updated[i].Completed = true
			updated[i].CompletedAt = prev.CompletedAt
		}
	}
	return updated
}

func (gs *GoalService) Delete(ctx context.Context, uid, id uuid.UUID) error {
	if _, err := gs.Get(ctx, uid, id); err != nil {
		return err
	}
	err := gs.goals.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	gs.cache.drop(ctx, uid)
	return nil
}

func (gs *GoalService) UpdateProgress(ctx context.Context, uid, id uuid.UUID, value float64) (*GoalProgressResult, error) {
	if value < 0 {
		return nil, errorvalues.ErrInvalidProgress
	}
	var res *GoalProgressResult
	err := gs.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, cal, err := userCalendar(ctx, gs.users, gs.calendar, uid)
		if err != nil {
			return err
		}
		goal, err := gs.lock(ctx, uid, id)
		if err != nil {
			return err
		}
		if goal.Status != entity.GoalActive {
			return errorvalues.ErrGoalNotActive
		}
		advanced := value > goal.CurrentValue
		goal.CurrentValue = value
		res = &GoalProgressResult{Goal: goal, CompletedMilestones: []int{}, Challenges: []*ChallengeResult{}}
		now := cal.Now()
		milestoneXP := 0
		for i := range goal.Milestones {
			m := &goal.Milestones[i]
			if m.Completed || value < m.TargetValue {
				continue
			}
			m.Completed = true
			m.CompletedAt = &now
			milestoneXP += m.XPReward
			res.CompletedMilestones = append(res.CompletedMilestones, i)
		}
		if value >= goal.TargetValue {
			goal.Status = entity.GoalCompleted
			res.GoalCompleted = true
		}
		if err = gs.save(ctx, goal); err != nil {
			return err
		}
		var awards []*entity.XPAward
		if milestoneXP > 0 {
			award, err := gs.awarder.Award(ctx, uid, milestoneXP, SourceMilestone)
			if err != nil {
				return err
			}
			awards = append(awards, award)
		}
		if res.GoalCompleted {
			award, err := gs.awarder.Award(ctx, uid, goal.XPReward, SourceGoal)
			if err != nil {
				return err
			}
			awards = append(awards, award)
		}
		res.Award = mergeAwards(awards...)
		if advanced && gs.challenges != nil {
			res.Challenges, err = gs.challenges.trackGoalProgress(ctx, uid, cal)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	gs.cache.drop(ctx, uid)
	return res, nil
}

func (gs *GoalService) CompleteMilestone(ctx context.Context, uid, id uuid.UUID, index int) (*GoalProgressResult, error) {
	var res *GoalProgressResult
	err := gs.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, cal, err := userCalendar(ctx, gs.users, gs.calendar, uid)
		if err != nil {
			return err
		}
		goal, err := gs.lock(ctx, uid, id)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(goal.Milestones) {
			return errorvalues.ErrMilestoneNotFound
		}
		res = &GoalProgressResult{Goal: goal, CompletedMilestones: []int{}, Challenges: []*ChallengeResult{}}
		m := &goal.Milestones[index]
		if m.Completed {
			return nil
		}
		if goal.Status != entity.GoalActive {
			return errorvalues.ErrGoalNotActive
		}
		now := cal.Now()
		m.Completed = true
		m.CompletedAt = &now
		res.CompletedMilestones = append(res.CompletedMilestones, index)
		if allMilestonesDone(goal.Milestones) {
			goal.Status = entity.GoalCompleted
			res.GoalCompleted = true
		}
		if err = gs.save(ctx, goal); err != nil {
			return err
		}
		award, err := gs.awarder.Award(ctx, uid, m.XPReward, SourceMilestone)
		if err != nil {
			return err
		}
		awards := []*entity.XPAward{award}
		if res.GoalCompleted {
			award, err = gs.awarder.Award(ctx, uid, goal.XPReward, SourceGoal)
			if err != nil {
				return err
			}
			awards = append(awards, award)
		}
		res.Award = mergeAwards(awards...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	gs.cache.drop(ctx, uid)
	return res, nil
}

func allMilestonesDone(ms []entity.Milestone) bool {
	for _, m := range ms {
		if !m.Completed {
			return false
		}
	}
	return len(ms) > 0
}

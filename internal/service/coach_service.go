package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/lumin/internal/ai"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/streak"
	"github.com/limbo/lumin/pkg/entity"
)

const (
	coachRecentEntries = 7
	coachGoals         = 10
)

// Coach is the part of ai.Service used by CoachService.
type Coach interface {
	GenerateSmartPrompts(ctx context.Context, in ai.PromptContext) ai.Result[[]ai.Prompt]
	AnalyzeMood(ctx context.Context, in ai.MoodContext) ai.Result[ai.MoodAnalysis]
	PlanGoal(ctx context.Context, in ai.GoalContext) ai.Result[ai.GoalPlan]
	SuggestHabits(ctx context.Context, in ai.HabitContext) ai.Result[[]ai.HabitSuggestion]
	GenerateMotivation(ctx context.Context, in ai.MotivationContext) ai.Result[ai.Motivation]
	ChatWithAI(ctx context.Context, in ai.ChatContext) ai.Result[ai.ChatReply]
}

// CoachService collects the user's journal context and passes it to the AI
// coach. Errors are returned only for storage failures; model failures are
// reported inside ai.Result.
type CoachService struct {
	coach    Coach
	users    repository.UsersRepositoryI
	entries  repository.EntriesRepositoryI
	goals    repository.GoalsRepositoryI
	calendar *streak.Calendar
}

func NewCoachService(coach Coach, usersRepo repository.UsersRepositoryI, entriesRepo repository.EntriesRepositoryI, goalsRepo repository.GoalsRepositoryI, calendar *streak.Calendar) *CoachService {
	if coach == nil || usersRepo == nil || entriesRepo == nil || goalsRepo == nil {
		log.Fatal("on coach service provided nil dependencies")
	}
	if calendar == nil {
		calendar = streak.NewCalendar(nil, nil)
	}
	return &CoachService{
		coach:    coach,
		users:    usersRepo,
		entries:  entriesRepo,
		goals:    goalsRepo,
		calendar: calendar,
	}
}

func (cs *CoachService) user(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	user, err := cs.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	return user, nil
}

func (cs *CoachService) recentEntries(ctx context.Context, uid uuid.UUID) ([]*entity.Entry, error) {
	entries, err := cs.entries.GetByUserID(ctx, uid, coachRecentEntries, 0)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	return entries, nil
}

func (cs *CoachService) activeGoals(ctx context.Context, uid uuid.UUID) ([]string, error) {
	goals, err := cs.goals.GetByUserID(ctx, uid, entity.GoalActive, coachGoals, 0)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	titles := make([]string, 0, len(goals))
	for _, g := range goals {
		titles = append(titles, g.Title)
	}
	return titles, nil
}

func (cs *CoachService) Prompts(ctx context.Context, uid uuid.UUID, count int) (ai.Result[[]ai.Prompt], error) {
	user, err := cs.user(ctx, uid)
	if err != nil {
		return ai.Result[[]ai.Prompt]{}, err
	}
	entries, err := cs.recentEntries(ctx, uid)
	if err != nil {
		return ai.Result[[]ai.Prompt]{}, err
	}
	goals, err := cs.activeGoals(ctx, uid)
	if err != nil {
		return ai.Result[[]ai.Prompt]{}, err
	}
	in := ai.PromptContext{Name: user.Name, Goals: goals, Count: count}
	var tags []string
	for _, e := range entries {
		in.RecentMoods = append(in.RecentMoods, e.Mood)
		tags = append(tags, e.Tags...)
	}
	in.Tags = normalizeTags(tags)
	return cs.coach.GenerateSmartPrompts(ctx, in), nil
}

func (cs *CoachService) AnalyzeMood(ctx context.Context, uid uuid.UUID, days int) (ai.Result[ai.MoodAnalysis], error) {
	if days <= 0 {
		days = defaultMoodDays
	}
	days = min(days, maxMoodDays)
	user, err := cs.user(ctx, uid)
	if err != nil {
		return ai.Result[ai.MoodAnalysis]{}, err
	}
	from := cs.calendar.In(user.Timezone).Today().AddDate(0, 0, -(days - 1))
	series, err := cs.entries.MoodSeries(ctx, uid, from)
	if err != nil {
		return ai.Result[ai.MoodAnalysis]{}, errors.New("entries repository error: " + err.Error())
	}
	in := ai.MoodContext{Entries: make([]ai.MoodSample, 0, len(series))}
	for _, p := range series {
		in.Entries = append(in.Entries, ai.MoodSample{Date: p.Date.Format(time.DateOnly), Mood: p.Mood})
	}
	return cs.coach.AnalyzeMood(ctx, in), nil
}

func (cs *CoachService) PlanGoal(ctx context.Context, uid uuid.UUID, req *GoalPlanRequest) (ai.Result[ai.GoalPlan], error) {
	if err := validateRequest(req); err != nil {
		return ai.Result[ai.GoalPlan]{}, err
	}
	if _, err := cs.user(ctx, uid); err != nil {
		return ai.Result[ai.GoalPlan]{}, err
	}
	in := ai.GoalContext{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
	}
	if req.Deadline != nil {
		in.Deadline = req.Deadline.Format(time.DateOnly)
	}
	return cs.coach.PlanGoal(ctx, in), nil
}

func (cs *CoachService) SuggestHabits(ctx context.Context, uid uuid.UUID, interests []string) (ai.Result[[]ai.HabitSuggestion], error) {
	goals, err := cs.activeGoals(ctx, uid)
	if err != nil {
		return ai.Result[[]ai.HabitSuggestion]{}, err
	}
	entries, err := cs.recentEntries(ctx, uid)
	if err != nil {
		return ai.Result[[]ai.HabitSuggestion]{}, err
	}
	in := ai.HabitContext{Goals: goals, Interests: normalizeTags(interests)}
	if len(entries) > 0 {
		sum := 0
		for _, e := range entries {
			sum += e.Mood
		}
		in.AverageMood = float64(sum) / float64(len(entries))
	}
	return cs.coach.SuggestHabits(ctx, in), nil
}

func (cs *CoachService) Motivation(ctx context.Context, uid uuid.UUID) (ai.Result[ai.Motivation], error) {
	user, err := cs.user(ctx, uid)
	if err != nil {
		return ai.Result[ai.Motivation]{}, err
	}
	in := ai.MotivationContext{Name: user.Name, Streak: user.Streak, Level: user.Level}
	entries, err := cs.entries.GetByUserID(ctx, uid, 1, 0)
	if err != nil {
		return ai.Result[ai.Motivation]{}, errors.New("entries repository error: " + err.Error())
	}
	if len(entries) > 0 {
		in.Mood = entries[0].Mood
	}
	return cs.coach.GenerateMotivation(ctx, in), nil
}

func (cs *CoachService) Chat(ctx context.Context, uid uuid.UUID, message string, history []ai.ChatTurn) (ai.Result[ai.ChatReply], error) {
	user, err := cs.user(ctx, uid)
	if err != nil {
		return ai.Result[ai.ChatReply]{}, err
	}
	return cs.coach.ChatWithAI(ctx, ai.ChatContext{Name: user.Name, Message: message, History: history}), nil
}

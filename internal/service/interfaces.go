package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/lumin/internal/ai"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/streak"
	"github.com/limbo/lumin/pkg/entity"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
}

type UpdateProfileRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type EntryRequest struct {
	Mood  int      `json:"mood" validate:"min=1,max=10"`
	Notes string   `json:"notes" validate:"max=20000"`
	Tags  []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
}

type MilestoneRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	TargetValue float64 `json:"target_value" validate:"gt=0"`
	XPReward    int     `json:"xp_reward" validate:"min=0,max=10000"`
}

type GoalRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description" validate:"max=2000"`
	Category    string             `json:"category" validate:"max=50"`
	TargetValue float64            `json:"target_value" validate:"gt=0"`
	Unit        string             `json:"unit" validate:"max=30"`
	Deadline    *time.Time         `json:"deadline" validate:"omitempty"`
	XPReward    int                `json:"xp_reward" validate:"min=0,max=10000"`
	Milestones  []MilestoneRequest `json:"milestones" validate:"max=20,dive"`
	// Status is ignored on creation. Goals are completed by reaching the
	// target value or finishing every milestone
	Status entity.GoalStatus `json:"status" validate:"omitempty,oneof=active paused abandoned"`
}

type GoalPlanRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Category    string     `json:"category" validate:"max=50"`
	TargetValue float64    `json:"target_value" validate:"gte=0"`
	Unit        string     `json:"unit" validate:"max=30"`
	Deadline    *time.Time `json:"deadline" validate:"omitempty"`
}

// EntryResult is everything that changed after a journal entry was written.
type EntryResult struct {
	Entry      *entity.Entry      `json:"entry"`
	Streak     streak.Status      `json:"streak"`
	Award      *entity.XPAward    `json:"award"`
	Challenges []*ChallengeResult `json:"completed_challenges"`
}

type ChallengeResult struct {
	Challenge *entity.Challenge `json:"challenge"`
	// Award is nil when the call did not complete the challenge
	Award *entity.XPAward `json:"award,omitempty"`
}

type GoalProgressResult struct {
	Goal                *entity.Goal       `json:"goal"`
	CompletedMilestones []int              `json:"completed_milestones"`
	GoalCompleted       bool               `json:"goal_completed"`
	Award               *entity.XPAward    `json:"award,omitempty"`
	Challenges          []*ChallengeResult `json:"completed_challenges"`
}

type Profile struct {
	User     *entity.User               `json:"user"`
	Progress gamification.LevelProgress `json:"progress"`
	Streak   streak.Status              `json:"streak"`
	Badges   []gamification.Badge       `json:"badges"`
}

type Dashboard struct {
	Profile
	TodayEntry    *entity.Entry       `json:"today_entry,omitempty"`
	RecentEntries []*entity.Entry     `json:"recent_entries"`
	ActiveGoals   []*entity.Goal      `json:"active_goals"`
	Challenges    []*entity.Challenge `json:"challenges"`
	Mood          *entity.MoodStats   `json:"mood"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type EntryServiceI interface {
	// Writes today's entry and applies streak, XP, challenge and badge effects atomically
	Create(ctx context.Context, uid uuid.UUID, req *EntryRequest) (*EntryResult, error)
	Get(ctx context.Context, uid, id uuid.UUID) (*entity.Entry, error)
	List(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Entry, error)
	Update(ctx context.Context, uid, id uuid.UUID, req *EntryRequest) (*entity.Entry, error)
	Delete(ctx context.Context, uid, id uuid.UUID) error
	// Aggregates mood of the last days (30 by default, 365 at most)
	MoodStats(ctx context.Context, uid uuid.UUID, days int) (*entity.MoodStats, error)
}

type GoalServiceI interface {
	Create(ctx context.Context, uid uuid.UUID, req *GoalRequest) (*entity.Goal, error)
	Get(ctx context.Context, uid, id uuid.UUID) (*entity.Goal, error)
	List(ctx context.Context, uid uuid.UUID, status entity.GoalStatus, pagination PaginationOpts) ([]*entity.Goal, error)
	Update(ctx context.Context, uid, id uuid.UUID, req *GoalRequest) (*entity.Goal, error)
	Delete(ctx context.Context, uid, id uuid.UUID) error
	// Sets current value, completing every reached milestone and the goal itself
	UpdateProgress(ctx context.Context, uid, id uuid.UUID, value float64) (*GoalProgressResult, error)
	// Completes a milestone by its index. Completing it again awards nothing
	CompleteMilestone(ctx context.Context, uid, id uuid.UUID, index int) (*GoalProgressResult, error)
}

type ChallengeServiceI interface {
	// Returns today's challenges, generating them on first access
	Today(ctx context.Context, uid uuid.UUID) ([]*entity.Challenge, error)
	AddProgress(ctx context.Context, uid, id uuid.UUID, amount int) (*ChallengeResult, error)
	Complete(ctx context.Context, uid, id uuid.UUID) (*ChallengeResult, error)
}

type DashboardServiceI interface {
	Profile(ctx context.Context, uid uuid.UUID) (*Profile, error)
	Dashboard(ctx context.Context, uid uuid.UUID) (*Dashboard, error)
}

type CoachServiceI interface {
	Prompts(ctx context.Context, uid uuid.UUID, count int) (ai.Result[[]ai.Prompt], error)
	AnalyzeMood(ctx context.Context, uid uuid.UUID, days int) (ai.Result[ai.MoodAnalysis], error)
	PlanGoal(ctx context.Context, uid uuid.UUID, req *GoalPlanRequest) (ai.Result[ai.GoalPlan], error)
	SuggestHabits(ctx context.Context, uid uuid.UUID, interests []string) (ai.Result[[]ai.HabitSuggestion], error)
	Motivation(ctx context.Context, uid uuid.UUID) (ai.Result[ai.Motivation], error)
	Chat(ctx context.Context, uid uuid.UUID, message string, history []ai.ChatTurn) (ai.Result[ai.ChatReply], error)
}

// Awarder grants XP and unlocks badges. Called inside a transaction it takes
// part in it.
type Awarder interface {
	Award(ctx context.Context, uid uuid.UUID, amount int, source string) (*entity.XPAward, error)
}

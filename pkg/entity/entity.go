package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	XP           int       `json:"xp"`
	Level        int       `json:"level"`
	Streak       int       `json:"streak"`
	Badges       []string  `json:"badges"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
}

type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"uid"`
	EntryDate time.Time `json:"entry_date"`
	Mood      int       `json:"mood"`
	Notes     string    `json:"notes"`
	Tags      []string  `json:"tags"`
	WordCount int       `json:"word_count"`
	XPAwarded int       `json:"xp_awarded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalAbandoned:
		return true
	}
	return false
}

type Milestone struct {
	Title       string     `json:"title"`
	TargetValue float64    `json:"target_value"`
	XPReward    int        `json:"xp_reward"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Goal struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"uid"`
	Title        string      `json:"title"`
	Description  string      `json:"desc"`
	Category     string      `json:"category"`
	CurrentValue float64     `json:"current_value"`
	TargetValue  float64     `json:"target_value"`
	Unit         string      `json:"unit"`
	Milestones   []Milestone `json:"milestones"`
	Status       GoalStatus  `json:"status"`
	Deadline     *time.Time  `json:"deadline,omitempty"`
	XPReward     int         `json:"xp_reward"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type Streak struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"uid"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastEntryDate *time.Time `json:"last_entry_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Challenge struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"uid"`
	ChallengeDate time.Time  `json:"challenge_date"`
	TemplateKey   string     `json:"template_key"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Kind          string     `json:"kind"`
	Target        int        `json:"target"`
	Progress      int        `json:"progress"`
	XPReward      int        `json:"xp_reward"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// XPAward describes the effect of a single award on a user's progression.
type XPAward struct {
	Amount      int      `json:"amount"`
	XPBefore    int      `json:"xp_before"`
	XPAfter     int      `json:"xp_after"`
	LevelBefore int      `json:"level_before"`
	LevelAfter  int      `json:"level_after"`
	LeveledUp   bool     `json:"leveled_up"`
	NewBadges   []string `json:"new_badges,omitempty"`
}

type UserStats struct {
	Entries             int
	CurrentStreak       int
	LongestStreak       int
	Level               int
	GoalsCompleted      int
	ChallengesCompleted int
}

type MoodPoint struct {
	Date time.Time `json:"date"`
	Mood int       `json:"mood"`
}

type MoodStats struct {
	Days    int         `json:"days"`
	Count   int         `json:"count"`
	Average float64     `json:"average"`
	Min     int         `json:"min"`
	Max     int         `json:"max"`
	Series  []MoodPoint `json:"series"`
}

package ai

// Result is what every coach call returns. Success is false whenever the
// model call or parsing failed; Data then holds the fallback value if the
// call kind has one, and is nil otherwise.
type Result[T any] struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Data     *T     `json:"data,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

type Prompt struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

type PromptContext struct {
	Name        string
	RecentMoods []int
	Tags        []string
	Goals       []string
	Count       int
}

type MoodSample struct {
	Date  string
	Mood  int
	Notes string
}

type MoodContext struct {
	Entries []MoodSample
}

type MoodAnalysis struct {
	Trend       string   `json:"trend"`
	Summary     string   `json:"summary"`
	AverageMood float64  `json:"average_mood"`
	Insights    []string `json:"insights"`
	Suggestions []string `json:"suggestions"`
}

type GoalContext struct {
	Title       string
	Description string
	Category    string
	TargetValue float64
	Unit        string
	Deadline    string
}

type PlannedMilestone struct {
	Title       string  `json:"title"`
	TargetValue float64 `json:"target_value"`
	XPReward    int     `json:"xp_reward"`
}

type GoalPlan struct {
	Milestones []PlannedMilestone `json:"milestones"`
	Steps      []string           `json:"steps"`
	Timeline   string             `json:"timeline"`
}

type HabitContext struct {
	Goals       []string
	Interests   []string
	AverageMood float64
}

type HabitSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Difficulty  string `json:"difficulty"`
}

type MotivationContext struct {
	Name   string
	Streak int
	Level  int
	Mood   int
}

type Motivation struct {
	Message string `json:"message"`
	Quote   string `json:"quote,omitempty"`
	Author  string `json:"author,omitempty"`
}

type ChatTurn struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type ChatContext struct {
	Name    string
	Message string
	History []ChatTurn
}

type ChatReply struct {
	Reply       string   `json:"reply"`
	Suggestions []string `json:"suggestions,omitempty"`
}

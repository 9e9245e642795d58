package ai

// FallbackProvider supplies content served when the model is unavailable.
// Mood analysis and goal planning deliberately have no fallback.
type FallbackProvider interface {
	Prompts() []Prompt
	Habits() []HabitSuggestion
	Motivation() Motivation
	Chat() ChatReply
}

type StaticFallbacks struct{}

func (StaticFallbacks) Prompts() []Prompt {
	return []Prompt{
		{Text: "What are three things you are grateful for today?", Category: "gratitude"},
		{Text: "What challenged you today and what did you learn from it?", Category: "growth"},
		{Text: "What is one small step you can take tomorrow toward your goals?", Category: "goals"},
	}
}

func (StaticFallbacks) Habits() []HabitSuggestion {
	return []HabitSuggestion{
		{Name: "Morning reflection", Description: "Spend five minutes writing down your intention for the day.", Frequency: "daily", Difficulty: "easy"},
		{Name: "Evening walk", Description: "Take a fifteen minute walk without your phone.", Frequency: "daily", Difficulty: "easy"},
		{Name: "Weekly review", Description: "Review your goals and celebrate progress every Sunday.", Frequency: "weekly", Difficulty: "medium"},
	}
}

func (StaticFallbacks) Motivation() Motivation {
	return Motivation{
		Message: "Every entry is a step forward. Keep showing up for yourself.",
		Quote:   "Small deeds done are better than great deeds planned.",
		Author:  "Peter Marshall",
	}
}

func (StaticFallbacks) Chat() ChatReply {
	return ChatReply{
		Reply: "I'm having trouble thinking right now. Please try again in a moment, and in the meantime a few minutes of journaling might help.",
	}
}

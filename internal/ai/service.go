package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"text/template"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/metrics"
)

const (
	KindPrompts    = "prompts"
	KindMood       = "mood"
	KindGoalPlan   = "goal_plan"
	KindHabits     = "habits"
	KindMotivation = "motivation"
	KindChat       = "chat"

	maxChatTurns   = 10
	defaultPrompts = 3
	maxPrompts     = 10

	// MaxMessageLength bounds a chat message and each history turn, in runes.
	MaxMessageLength = 4000
)

type Service struct {
	gen       Generator
	fallbacks FallbackProvider
	cache     *lru.Cache[string, string]
	logger    *slog.Logger
}

// NewService builds the coach. gen may be nil, then every call fails over to
// fallbacks. cacheSize > 0 enables an LRU of raw model answers.
func NewService(gen Generator, fallbacks FallbackProvider, cacheSize int, logger *slog.Logger) *Service {
	if fallbacks == nil {
		fallbacks = StaticFallbacks{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		gen:       gen,
		fallbacks: fallbacks,
		logger:    logger,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, string](cacheSize)
		if err == nil {
			s.cache = cache
		}
	}
	return s
}

type call[T any] struct {
	kind      string
	tmpl      *template.Template
	data      any
	cacheable bool
	fallback  func() T
	validate  func(T) error
}

func run[T any](ctx context.Context, s *Service, c call[T]) Result[T] {
	value, err := generate(ctx, s, c)
	if err == nil {
		metrics.RecordAIRequest(c.kind, "success")
		return Result[T]{Success: true, Data: &value}
	}
	s.logger.Warn("ai call failed", slog.String("kind", c.kind), slog.String("error", err.Error()))
	res := Result[T]{Success: false, Error: err.Error()}
	if c.fallback != nil {
		fb := c.fallback()
		res.Data = &fb
		res.Fallback = true
		metrics.RecordAIRequest(c.kind, "fallback")
	} else {
		metrics.RecordAIRequest(c.kind, "error")
	}
	return res
}

func generate[T any](ctx context.Context, s *Service, c call[T]) (T, error) {
	var zero T
	if s.gen == nil {
		return zero, errorvalues.ErrAIUnavailable
	}
	prompt, err := render(c.tmpl, c.data)
	if err != nil {
		return zero, errors.New("rendering prompt error: " + err.Error())
	}
	key := c.kind + "\x00" + prompt
	if c.cacheable && s.cache != nil {
		if text, ok := s.cache.Get(key); ok {
			if value, err := decodeJSON[T](text); err == nil {
				return value, nil
			}
			s.cache.Remove(key)
		}
	}
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return zero, err
	}
	value, err := decodeJSON[T](text)
	if err != nil {
		return zero, err
	}
	if c.validate != nil {
		if err = c.validate(value); err != nil {
			return zero, err
		}
	}
	if c.cacheable && s.cache != nil {
		s.cache.Add(key, text)
	}
	return value, nil
}

func (s *Service) GenerateSmartPrompts(ctx context.Context, in PromptContext) Result[[]Prompt] {
	if in.Count <= 0 {
		in.Count = defaultPrompts
	}
	if in.Count > maxPrompts {
		in.Count = maxPrompts
	}
	return run(ctx, s, call[[]Prompt]{
		kind:      KindPrompts,
		tmpl:      promptsTmpl,
		data:      in,
		cacheable: true,
		fallback:  s.fallbacks.Prompts,
		validate: func(p []Prompt) error {
			if len(p) == 0 {
				return errorvalues.ErrAIEmptyResponse
			}
			return nil
		},
	})
}

func (s *Service) AnalyzeMood(ctx context.Context, in MoodContext) Result[MoodAnalysis] {
	if len(in.Entries) == 0 {
		return Result[MoodAnalysis]{Success: false, Error: "no entries to analyze"}
	}
	return run(ctx, s, call[MoodAnalysis]{
		kind:      KindMood,
		tmpl:      moodTmpl,
		data:      in,
		cacheable: true,
		validate: func(m MoodAnalysis) error {
			if m.Summary == "" && m.Trend == "" {
				return errorvalues.ErrAIEmptyResponse
			}
			return nil
		},
	})
}

func (s *Service) PlanGoal(ctx context.Context, in GoalContext) Result[GoalPlan] {
	return run(ctx, s, call[GoalPlan]{
		kind:      KindGoalPlan,
		tmpl:      goalTmpl,
		data:      in,
		cacheable: true,
		validate: func(p GoalPlan) error {
			if len(p.Milestones) == 0 {
				return errorvalues.ErrAIEmptyResponse
			}
			return nil
		},
	})
}

func (s *Service) SuggestHabits(ctx context.Context, in HabitContext) Result[[]HabitSuggestion] {
	return run(ctx, s, call[[]HabitSuggestion]{
		kind:      KindHabits,
		tmpl:      habitsTmpl,
		data:      in,
		cacheable: true,
		fallback:  s.fallbacks.Habits,
		validate: func(h []HabitSuggestion) error {
			if len(h) == 0 {
				return errorvalues.ErrAIEmptyResponse
			}
			return nil
		},
	})
}

func (s *Service) GenerateMotivation(ctx context.Context, in MotivationContext) Result[Motivation] {
	return run(ctx, s, call[Motivation]{
		kind:     KindMotivation,
		tmpl:     motivationTmpl,
		data:     in,
		fallback: s.fallbacks.Motivation,
		validate: func(m Motivation) error {
			if m.Message == "" {
				return errorvalues.ErrAIEmptyResponse
			}
			return nil
		},
	})
}

func (s *Service) ChatWithAI(ctx context.Context, in ChatContext) Result[ChatReply] {
	in.Message = truncate(strings.TrimSpace(in.Message), MaxMessageLength)
	in.History = SanitizeHistory(in.History)
	if in.Message == "" {
		return Result[ChatReply]{Success: false, Error: "empty message"}
	}
	return run(ctx, s, call[ChatReply]{
		kind:     KindChat,
		tmpl:     chatTmpl,
		data:     in,
		fallback: s.fallbacks.Chat,
		validate: func(r ChatReply) error {
			if r.Reply == "" {
				return errorvalues.ErrAIEmptyResponse
			}
			return nil
		},
	})
}

// SanitizeHistory keeps the last turns with known roles and trims their text.
func SanitizeHistory(history []ChatTurn) []ChatTurn {
	clean := make([]ChatTurn, 0, len(history))
	for _, t := range history {
		role := strings.ToLower(strings.TrimSpace(t.Role))
		if role != "user" && role != "assistant" {
			continue
		}
		content := truncate(strings.TrimSpace(t.Content), MaxMessageLength)
		if content == "" {
			continue
		}
		clean = append(clean, ChatTurn{Role: role, Content: content})
	}
	if len(clean) > maxChatTurns {
		clean = clean[len(clean)-maxChatTurns:]
	}
	return clean
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

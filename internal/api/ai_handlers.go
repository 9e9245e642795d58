package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/limbo/lumin/internal/ai"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/httputil"
)

const (
	defaultPromptCount = 3
	maxPromptCount     = 10
)

type PromptsRequest struct {
	Count int `json:"count"`
}

type MoodAnalysisRequest struct {
	Days int `json:"days"`
}

type HabitsRequest struct {
	Interests []string `json:"interests"`
}

type ChatRequest struct {
	Message string        `json:"message"`
	History []ai.ChatTurn `json:"history"`
}

// writeAIResult answers 200 whenever there is something to show, fallback
// included, and 502 otherwise.
func writeAIResult[T any](w http.ResponseWriter, logger *slog.Logger, kind string, res ai.Result[T]) {
	if res.Data == nil {
		logger.Warn("ai coach failed", slog.String("kind", kind), slog.String("error", res.Error))
		var details error
		if res.Error != "" {
			details = errors.New(res.Error)
		}
		httputil.WriteErrorResponse(w, http.StatusBadGateway, "ai coach is unavailable", details)
		return
	}
	if !res.Success {
		logger.Warn("ai coach answered with fallback", slog.String("kind", kind), slog.String("error", res.Error))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
}

func (s *Server) AIPrompts(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	req := PromptsRequest{Count: defaultPromptCount}
	if err := decodeOptionalBody(r, &req); err != nil {
		logger.Warn("ai prompts error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Count < 1 {
		req.Count = defaultPromptCount
	}
	req.Count = min(req.Count, maxPromptCount)
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout*3)
	defer cancel()
	res, err := s.coachService.Prompts(ctx, uid, req.Count)
	if err != nil {
		writeServiceError(w, logger, "generating prompts", err)
		return
	}
	writeAIResult(w, logger, "prompts", res)
}

func (s *Server) AIMood(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req MoodAnalysisRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		logger.Warn("ai mood error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout*3)
	defer cancel()
	res, err := s.coachService.AnalyzeMood(ctx, uid, req.Days)
	if err != nil {
		writeServiceError(w, logger, "analyzing mood", err)
		return
	}
	writeAIResult(w, logger, "mood", res)
}

func (s *Server) AIGoalPlan(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req service.GoalPlanRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("ai goal plan error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout*3)
	defer cancel()
	res, err := s.coachService.PlanGoal(ctx, uid, &req)
	if err != nil {
		writeServiceError(w, logger, "planning goal", err)
		return
	}
	writeAIResult(w, logger, "goal_plan", res)
}

func (s *Server) AIHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req HabitsRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		logger.Warn("ai habits error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout*3)
	defer cancel()
	res, err := s.coachService.SuggestHabits(ctx, uid, req.Interests)
	if err != nil {
		writeServiceError(w, logger, "suggesting habits", err)
		return
	}
	writeAIResult(w, logger, "habits", res)
}

func (s *Server) AIMotivation(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout*3)
	defer cancel()
	res, err := s.coachService.Motivation(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "generating motivation", err)
		return
	}
	writeAIResult(w, logger, "motivation", res)
}

func (s *Server) AIChat(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req ChatRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("ai chat error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" || utf8.RuneCountInString(req.Message) > ai.MaxMessageLength {
		logger.Warn("ai chat error: invalid message length")
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "request validation failed",
			errors.New("message must contain from 1 to "+strconv.Itoa(ai.MaxMessageLength)+" characters"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout*3)
	defer cancel()
	res, err := s.coachService.Chat(ctx, uid, req.Message, req.History)
	if err != nil {
		writeServiceError(w, logger, "chatting", err)
		return
	}
	writeAIResult(w, logger, "chat", res)
}

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/limbo/lumin/pkg/httputil"
)

type ListGoalsResponse struct {
	UserID string         `json:"uid"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Goals  []*entity.Goal `json:"goals"`
}

type GoalProgressRequest struct {
	Value *float64 `json:"value"`
}

func (s *Server) CreateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req service.GoalRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("create goal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	goal, err := s.goalService.Create(ctx, uid, &req)
	if err != nil {
		writeServiceError(w, logger, "creating goal", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, goal)
	logger.Info("goal created")
}

func (s *Server) ListGoals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	page, limit, opts := pagination(r)
	status := entity.GoalStatus(r.URL.Query().Get("status"))
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	goals, err := s.goalService.List(ctx, uid, status, opts)
	if err != nil {
		writeServiceError(w, logger, "listing goals", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ListGoalsResponse{
		UserID: uid.String(),
		Page:   page,
		Limit:  limit,
		Goals:  goals,
	})
}

func (s *Server) GetGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, logger, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	goal, err := s.goalService.Get(ctx, uid, id)
	if err != nil {
		writeServiceError(w, logger, "getting goal", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, goal)
}

func (s *Server) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, logger, "id")
	if !ok {
		return
	}
	var req service.GoalRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("update goal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	goal, err := s.goalService.Update(ctx, uid, id, &req)
	if err != nil {
		writeServiceError(w, logger, "updating goal", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, goal)
	logger.Info("goal updated")
}

func (s *Server) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, logger, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	if err := s.goalService.Delete(ctx, uid, id); err != nil {
		writeServiceError(w, logger, "deleting goal", err)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "goal deleted", nil)
	logger.Info("goal deleted")
}

func (s *Server) UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, logger, "id")
	if !ok {
		return
	}
	var req GoalProgressRequest
	if err := decodeBody(r, &req); err != nil || req.Value == nil {
		logger.Warn("goal progress error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	res, err := s.goalService.UpdateProgress(ctx, uid, id, *req.Value)
	if err != nil {
		writeServiceError(w, logger, "updating goal progress", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
	logger.Info("goal progress updated")
}

func (s *Server) CompleteMilestone(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, logger, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		logger.Warn("milestone completion error: invalid index")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid milestone index in path", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	res, err := s.goalService.CompleteMilestone(ctx, uid, id, index)
	if err != nil {
		writeServiceError(w, logger, "completing milestone", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
	logger.Info("milestone completed")
}

package api

import (
	"context"
	"net/http"

	"github.com/limbo/lumin/pkg/httputil"
)

type ChallengeProgressRequest struct {
	Amount int `json:"amount"`
}

func (s *Server) TodayChallenges(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	challenges, err := s.challengeService.Today(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "getting challenges", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"challenges": challenges})
}

func (s *Server) AddChallengeProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, logger, "id")
	if !ok {
		return
	}
	req := ChallengeProgressRequest{Amount: 1}
	if err := decodeOptionalBody(r, &req); err != nil {
		logger.Warn("challenge progress error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	res, err := s.challengeService.AddProgress(ctx, uid, id, req.Amount)
	if err != nil {
		writeServiceError(w, logger, "adding challenge progress", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
	logger.Info("challenge progress added")
}

func (s *Server) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
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
	res, err := s.challengeService.Complete(ctx, uid, id)
	if err != nil {
		writeServiceError(w, logger, "completing challenge", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
	logger.Info("challenge completed")
}

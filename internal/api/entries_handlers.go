package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/limbo/lumin/pkg/httputil"
)

type ListEntriesResponse struct {
	UserID  string          `json:"uid"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Entries []*entity.Entry `json:"entries"`
}

func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req service.EntryRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("create entry error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	res, err := s.entryService.Create(ctx, uid, &req)
	if err != nil {
		writeServiceError(w, logger, "creating entry", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, res)
	logger.Info("entry created")
}

func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	page, limit, opts := pagination(r)
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	entries, err := s.entryService.List(ctx, uid, opts)
	if err != nil {
		writeServiceError(w, logger, "listing entries", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ListEntriesResponse{
		UserID:  uid.String(),
		Page:    page,
		Limit:   limit,
		Entries: entries,
	})
}

func (s *Server) MoodStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		var err error
		days, err = strconv.Atoi(raw)
		if err != nil {
			logger.Warn("mood stats error: invalid days")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "days must be a number", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	stats, err := s.entryService.MoodStats(ctx, uid, days)
	if err != nil {
		writeServiceError(w, logger, "mood stats", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}

func (s *Server) GetEntry(w http.ResponseWriter, r *http.Request) {
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
	entry, err := s.entryService.Get(ctx, uid, id)
	if err != nil {
		writeServiceError(w, logger, "getting entry", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
}

func (s *Server) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, logger, "id")
	if !ok {
		return
	}
	var req service.EntryRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("update entry error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	entry, err := s.entryService.Update(ctx, uid, id, &req)
	if err != nil {
		writeServiceError(w, logger, "updating entry", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
	logger.Info("entry updated")
}

func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
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
	if err := s.entryService.Delete(ctx, uid, id); err != nil {
		writeServiceError(w, logger, "deleting entry", err)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "entry deleted", nil)
	logger.Info("entry deleted")
}

package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/httputil"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID       string `json:"uid"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// statusOf maps service errors to a response status and a client message.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation), errors.Is(err, errorvalues.ErrInvalidProgress):
		return http.StatusUnprocessableEntity, "request validation failed"
	case errors.Is(err, errorvalues.ErrUserExists):
		return http.StatusConflict, "user with such name already exists"
	case errors.Is(err, errorvalues.ErrEntryExists):
		return http.StatusConflict, "entry for today already exists"
	case errors.Is(err, errorvalues.ErrGoalNotActive):
		return http.StatusConflict, "goal is not active"
	case errors.Is(err, errorvalues.ErrChallengeExpired):
		return http.StatusConflict, "challenge belongs to another day"
	case errors.Is(err, errorvalues.ErrWrongCredentials):
		return http.StatusForbidden, "invalid username or password"
	case errors.Is(err, errorvalues.ErrUserNotFound):
		return http.StatusNotFound, "user doesn't exist"
	case errors.Is(err, errorvalues.ErrEntryNotFound):
		return http.StatusNotFound, "entry doesn't exist"
	case errors.Is(err, errorvalues.ErrGoalNotFound):
		return http.StatusNotFound, "goal doesn't exist"
	case errors.Is(err, errorvalues.ErrMilestoneNotFound):
		return http.StatusNotFound, "milestone doesn't exist"
	case errors.Is(err, errorvalues.ErrChallengeNotFound):
		return http.StatusNotFound, "challenge doesn't exist"
	case errors.Is(err, errorvalues.ErrWrongOwner):
		// foreign resources are reported as missing
		return http.StatusNotFound, "resource doesn't exist"
	case errors.Is(err, errorvalues.ErrInvalidToken), errors.Is(err, errorvalues.ErrWrongTokenType):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, errorvalues.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, "too many requests"
	}
	return http.StatusInternalServerError, "internal error"
}

func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	status, message := statusOf(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, status, "internal error during "+op, nil)
	case http.StatusUnprocessableEntity:
		logger.Warn(op+" error: invalid request", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, status, message, err)
	default:
		logger.Warn(op+" error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, status, message, nil)
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(v)
}

// decodeOptionalBody leaves v untouched when the body is empty.
func decodeOptionalBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := decodeBody(r, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// authorized returns the uid put by AuthMiddleware or writes 401.
func authorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("unauthorized request reached handler")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return uuid.UUID{}, false
	}
	return uid, true
}

func pathID(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		logger.Warn("invalid id in path value", slog.String("param", name))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid "+name+" in path", nil)
		return uuid.UUID{}, false
	}
	return id, true
}

// pagination reads page and limit query parameters.
func pagination(r *http.Request) (page, limit int, opts service.PaginationOpts) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)
	page, err = strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return page, limit, service.PaginationOpts{Limit: limit, Offset: (page - 1) * limit}
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.Register(ctx, &req)
	if err != nil {
		writeServiceError(w, logger, "registration", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, logger, "login", err)
		return
	}
	tokens, err := s.jwtService.GeneratePair(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, LoginResponse{
		UserID:       user.ID.String(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	logger.Info("successful login")
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RefreshRequest
	if err := decodeBody(r, &req); err != nil || req.RefreshToken == "" {
		logger.Warn("refresh error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	claims, err := s.jwtService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		logger.Warn("refresh error: invalid token", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		logger.Warn("refresh error: invalid uid in claims")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Warn("refresh error: user doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid refresh token", nil)
			return
		}
		writeServiceError(w, logger, "token refresh", err)
		return
	}
	tokens, err := s.jwtService.GeneratePair(user)
	if err != nil {
		logger.Error("refresh error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, LoginResponse{
		UserID:       user.ID.String(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	logger.Info("tokens refreshed")
}

func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	profile, err := s.dashboardService.Profile(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "getting profile", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
}

func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req service.UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("profile update error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.UpdateProfile(ctx, uid, &req)
	if err != nil {
		writeServiceError(w, logger, "profile update", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
	logger.Info("profile updated")
}

func (s *Server) DeleteMe(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	var req DeleteAccountRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Warn("account deletion error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	if err := s.userService.DeleteAccount(ctx, uid, req.Password); err != nil {
		writeServiceError(w, logger, "account deletion", err)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "account deleted", nil)
	logger.Info("account deleted")
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, ok := authorized(w, r, logger)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	d, err := s.dashboardService.Dashboard(ctx, uid)
	if err != nil {
		writeServiceError(w, logger, "building dashboard", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, d)
}

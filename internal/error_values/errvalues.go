package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrWrongTokenType   = errors.New("wrong token type")
	ErrOwnerNotFound    = errors.New("owner doesn't exist")
	ErrWrongOwner       = errors.New("resource belongs to another user")
	ErrValidation       = errors.New("validation error")

	ErrEntryExists   = errors.New("entry for this day already exists")
	ErrEntryNotFound = errors.New("entry doesn't exist")

	ErrGoalNotFound       = errors.New("goal doesn't exist")
	ErrGoalNotActive      = errors.New("goal is not active")
	ErrMilestoneNotFound  = errors.New("milestone doesn't exist")
	ErrStreakNotFound     = errors.New("streak doesn't exist")
	ErrChallengeNotFound  = errors.New("challenge doesn't exist")
	ErrChallengeExpired   = errors.New("challenge belongs to another day")
	ErrInvalidProgress    = errors.New("progress amount must be positive")
	ErrCacheMiss          = errors.New("cache miss")
	ErrAIUnavailable      = errors.New("ai generator is not configured")
	ErrAIRefused          = errors.New("model refused to answer")
	ErrAIEmptyResponse    = errors.New("model returned empty response")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrSessionExpired     = errors.New("session expired")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

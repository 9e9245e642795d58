// Package scheduler runs periodic maintenance: generating daily challenges
// ahead of the first request of the day and sweeping in-memory state.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/limbo/lumin/internal/metrics"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/robfig/cron/v3"
)

const (
	DefaultChallengeSpec = "5 * * * *"
	DefaultCleanupSpec   = "@every 10m"
	defaultPageSize      = 100
	defaultMaxIdle       = 30 * time.Minute

	jobChallenges = "daily_challenges"
	jobCleanup    = "cleanup"
)

type UserLister interface {
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

type ChallengeGenerator interface {
	Generate(ctx context.Context, user *entity.User) (int, error)
}

// Sweeper forgets rate limiter keys idle for longer than maxIdle.
type Sweeper interface {
	Cleanup(maxIdle time.Duration) int
}

// Purger drops expired cache items.
type Purger interface {
	Purge() int
}

type Opts struct {
	Users      UserLister
	Challenges ChallengeGenerator
	Limiters   []Sweeper
	Caches     []Purger
	// Standard 5-field cron expressions. Empty values use the defaults
	ChallengeSpec string
	CleanupSpec   string
	Location      *time.Location
	PageSize      int
	MaxIdle       time.Duration
	// Deadline of a single job run
	Timeout time.Duration
	Logger  *slog.Logger
}

type Scheduler struct {
	cron       *cron.Cron
	users      UserLister
	challenges ChallengeGenerator
	limiters   []Sweeper
	caches     []Purger
	pageSize   int
	maxIdle    time.Duration
	timeout    time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	running bool
}

func New(opts Opts) (*Scheduler, error) {
	if opts.Users == nil || opts.Challenges == nil {
		return nil, errors.New("scheduler requires users and challenges")
	}
	if opts.ChallengeSpec == "" {
		opts.ChallengeSpec = DefaultChallengeSpec
	}
	if opts.CleanupSpec == "" {
		opts.CleanupSpec = DefaultCleanupSpec
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.MaxIdle <= 0 {
		opts.MaxIdle = defaultMaxIdle
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(opts.Location), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		users:      opts.Users,
		challenges: opts.Challenges,
		limiters:   opts.Limiters,
		caches:     opts.Caches,
		pageSize:   opts.PageSize,
		maxIdle:    opts.MaxIdle,
		timeout:    opts.Timeout,
		logger:     opts.Logger.With(slog.String("component", "scheduler")),
	}
	if _, err := s.cron.AddFunc(opts.ChallengeSpec, s.runChallenges); err != nil {
		return nil, errors.New("invalid challenge schedule " + opts.ChallengeSpec + ": " + err.Error())
	}
	if _, err := s.cron.AddFunc(opts.CleanupSpec, s.runCleanup); err != nil {
		return nil, errors.New("invalid cleanup schedule " + opts.CleanupSpec + ": " + err.Error())
	}
	return s, nil
}

// Start runs the jobs in the background until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop prevents new runs and waits for the running ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runChallenges() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	start := time.Now()
	users, failed, err := s.GenerateChallenges(ctx)
	metrics.RecordJobRun(jobChallenges, err == nil && failed == 0)
	if err != nil {
		s.logger.Error("daily challenges job failed", slog.String("error", err.Error()), slog.Int("users", users))
		return
	}
	s.logger.Info("daily challenges job finished",
		slog.Int("users", users),
		slog.Int("failed", failed),
		slog.Duration("took", time.Since(start)),
	)
}

// GenerateChallenges walks every user page by page and makes sure today's
// challenges exist in their timezone. Failures of single users are counted
// and skipped. The returned error is set when listing users fails.
func (s *Scheduler) GenerateChallenges(ctx context.Context) (processed, failed int, err error) {
	for offset := 0; ; offset += s.pageSize {
		users, err := s.users.List(ctx, s.pageSize, offset)
		if err != nil {
			return processed, failed, errors.New("listing users error: " + err.Error())
		}
		for _, user := range users {
			if err := ctx.Err(); err != nil {
				return processed, failed, err
			}
			if _, err := s.challenges.Generate(ctx, user); err != nil {
				failed++
				s.logger.Warn("generating challenges error",
					slog.String("uid", user.ID.String()),
					slog.String("error", err.Error()),
				)
			}
			processed++
		}
		if len(users) < s.pageSize {
			return processed, failed, nil
		}
	}
}

func (s *Scheduler) runCleanup() {
	keys, items := s.Cleanup()
	metrics.RecordJobRun(jobCleanup, true)
	if keys > 0 || items > 0 {
		s.logger.Debug("cleanup finished", slog.Int("limiter_keys", keys), slog.Int("cache_items", items))
	}
}

// Cleanup sweeps idle limiter keys and expired cache items.
func (s *Scheduler) Cleanup() (limiterKeys, cacheItems int) {
	for _, l := range s.limiters {
		limiterKeys += l.Cleanup(s.maxIdle)
	}
	for _, c := range s.caches {
		cacheItems += c.Purge()
	}
	return limiterKeys, cacheItems
}

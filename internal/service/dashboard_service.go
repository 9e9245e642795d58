package service

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/streak"
	"github.com/limbo/lumin/pkg/entity"
)

const (
	dashboardRecentEntries = 5
	dashboardActiveGoals   = 5
	dashboardMoodDays      = 7
)

type DashboardService struct {
	users      repository.UsersRepositoryI
	entries    repository.EntriesRepositoryI
	goals      repository.GoalsRepositoryI
	streaks    repository.StreaksRepositoryI
	challenges ChallengeServiceI
	catalog    *gamification.Catalog
	calendar   *streak.Calendar
	cache      *DashboardCache
}

type DashboardServiceOpts struct {
	UsersRepo   repository.UsersRepositoryI
	EntriesRepo repository.EntriesRepositoryI
	GoalsRepo   repository.GoalsRepositoryI
	StreaksRepo repository.StreaksRepositoryI
	Challenges  ChallengeServiceI
	Catalog     *gamification.Catalog
	Calendar    *streak.Calendar
	Cache       *DashboardCache
}

func NewDashboardService(opts DashboardServiceOpts) *DashboardService {
	if opts.UsersRepo == nil || opts.EntriesRepo == nil || opts.GoalsRepo == nil || opts.StreaksRepo == nil || opts.Challenges == nil || opts.Catalog == nil {
		log.Fatal("on dashboard service provided nil dependencies")
	}
	if opts.Calendar == nil {
		opts.Calendar = streak.NewCalendar(nil, nil)
	}
	return &DashboardService{
		users:      opts.UsersRepo,
		entries:    opts.EntriesRepo,
		goals:      opts.GoalsRepo,
		streaks:    opts.StreaksRepo,
		challenges: opts.Challenges,
		catalog:    opts.Catalog,
		calendar:   opts.Calendar,
		cache:      opts.Cache,
	}
}

func (ds *DashboardService) profile(ctx context.Context, user *entity.User, cal *streak.Calendar) (*Profile, error) {
	state := streak.State{}
	s, err := ds.streaks.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		state = stateOf(cal, s)
	case !errors.Is(err, errorvalues.ErrStreakNotFound):
		return nil, errors.New("streaks repository error: " + err.Error())
	}
	badges := make([]gamification.Badge, 0, len(user.Badges))
	for _, id := range user.Badges {
		if b, ok := ds.catalog.Badge(id); ok {
			badges = append(badges, b)
		}
	}
	return &Profile{
		User:     user,
		Progress: gamification.Progress(user.XP),
		Streak:   streak.Describe(cal, state, cal.Today()),
		Badges:   badges,
	}, nil
}

// Profile reports level progress and the displayed streak, which is 0 once a
// day was missed even though the stored value changes only on the next entry.
func (ds *DashboardService) Profile(ctx context.Context, uid uuid.UUID) (*Profile, error) {
	user, cal, err := userCalendar(ctx, ds.users, ds.calendar, uid)
	if err != nil {
		return nil, err
	}
	return ds.profile(ctx, user, cal)
}

func (ds *DashboardService) Dashboard(ctx context.Context, uid uuid.UUID) (*Dashboard, error) {
	cached, err := ds.cache.Get(ctx, uid)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, errorvalues.ErrCacheMiss) && !errors.Is(err, errCacheDisabled) {
		slog.Default().Warn("reading dashboard cache failed", slog.String("error", err.Error()))
	}
	d, err := ds.build(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err = ds.cache.Set(ctx, uid, d); err != nil {
		slog.Default().Warn("writing dashboard cache failed", slog.String("error", err.Error()))
	}
	return d, nil
}

func (ds *DashboardService) build(ctx context.Context, uid uuid.UUID) (*Dashboard, error) {
	user, cal, err := userCalendar(ctx, ds.users, ds.calendar, uid)
	if err != nil {
		return nil, err
	}
	profile, err := ds.profile(ctx, user, cal)
	if err != nil {
		return nil, err
	}
	d := Dashboard{Profile: *profile}
	today := cal.Today()
	d.TodayEntry, err = ds.entries.GetByDate(ctx, uid, today)
	if err != nil && !errors.Is(err, errorvalues.ErrEntryNotFound) {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	d.RecentEntries, err = ds.entries.GetByUserID(ctx, uid, dashboardRecentEntries, 0)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	d.ActiveGoals, err = ds.goals.GetByUserID(ctx, uid, entity.GoalActive, dashboardActiveGoals, 0)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	d.Challenges, err = ds.challenges.Today(ctx, uid)
	if err != nil {
		return nil, err
	}
	series, err := ds.entries.MoodSeries(ctx, uid, today.AddDate(0, 0, -(dashboardMoodDays-1)))
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	d.Mood = summarizeMood(dashboardMoodDays, series)
	return &d, nil
}

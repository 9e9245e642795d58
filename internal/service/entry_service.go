package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/streak"
	"github.com/limbo/lumin/pkg/entity"
)

const (
	defaultMoodDays = 30
	maxMoodDays     = 365
)

type EntryService struct {
	tx         repository.TransactorI
	users      repository.UsersRepositoryI
	entries    repository.EntriesRepositoryI
	streaks    repository.StreaksRepositoryI
	awarder    Awarder
	challenges *ChallengeService
	calendar   *streak.Calendar
	cache      *DashboardCache
}

type EntryServiceOpts struct {
	Transactor  repository.TransactorI
	UsersRepo   repository.UsersRepositoryI
	EntriesRepo repository.EntriesRepositoryI
	StreaksRepo repository.StreaksRepositoryI
	Awarder     Awarder
	// Optional. Without it entries do not advance daily challenges
	Challenges *ChallengeService
	Calendar   *streak.Calendar
	Cache      *DashboardCache
}

func NewEntryService(opts EntryServiceOpts) *EntryService {
	if opts.Transactor == nil || opts.UsersRepo == nil || opts.EntriesRepo == nil || opts.StreaksRepo == nil || opts.Awarder == nil {
		log.Fatal("on entry service provided nil dependencies")
	}
	if opts.Calendar == nil {
		opts.Calendar = streak.NewCalendar(nil, nil)
	}
	return &EntryService{
		tx:         opts.Transactor,
		users:      opts.UsersRepo,
		entries:    opts.EntriesRepo,
		streaks:    opts.StreaksRepo,
		awarder:    opts.Awarder,
		challenges: opts.Challenges,
		calendar:   opts.Calendar,
		cache:      opts.Cache,
	}
}

func (es *EntryService) Create(ctx context.Context, uid uuid.UUID, req *EntryRequest) (*EntryResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var res EntryResult
	err := es.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, cal, err := userCalendar(ctx, es.users, es.calendar, uid)
		if err != nil {
			return err
		}
		today := cal.Today()
		// Locking the streak row first serializes concurrent entries of one user
		state, err := es.lockStreak(ctx, cal, uid)
		if err != nil {
			return err
		}
		_, err = es.entries.GetByDate(ctx, uid, today)
		switch {
		case err == nil:
			return errorvalues.ErrEntryExists
		case !errors.Is(err, errorvalues.ErrEntryNotFound):
			return errors.New("entries repository error: " + err.Error())
		}
		// A streak already counting today means this day's entry was deleted
		// and written again: the entry is stored without XP or challenge progress.
		upd := streak.Apply(cal, state, today)
		reward := 0
		if upd.Changed {
			reward = gamification.EntryReward(upd.Current)
		}
		entry := entity.Entry{
			UserID:    uid,
			EntryDate: today,
			Mood:      req.Mood,
			Notes:     req.Notes,
			Tags:      normalizeTags(req.Tags),
			WordCount: countWords(req.Notes),
			XPAwarded: reward,
		}
		err = es.entries.Create(ctx, &entry)
		if err != nil {
			switch {
			case errors.Is(err, errorvalues.ErrEntryExists):
				return err
			case errors.Is(err, errorvalues.ErrOwnerNotFound):
				return errorvalues.ErrUserNotFound
			}
			return errors.New("entries repository error: " + err.Error())
		}
		if upd.Changed {
			err = es.streaks.Upsert(ctx, &entity.Streak{
				UserID:        uid,
				CurrentStreak: upd.Current,
				LongestStreak: upd.Longest,
				LastEntryDate: upd.LastDate,
			})
			if err != nil {
				return errors.New("streaks repository error: " + err.Error())
			}
			if err = es.users.SetStreak(ctx, uid, upd.Current); err != nil {
				return errors.New("users repository error: " + err.Error())
			}
		}
		award, err := es.awarder.Award(ctx, uid, entry.XPAwarded, SourceEntry)
		if err != nil {
			return err
		}
		completed := []*ChallengeResult{}
		if es.challenges != nil && upd.Changed {
			completed, err = es.challenges.trackEntry(ctx, uid, cal, &entry)
			if err != nil {
				return err
			}
		}
		res = EntryResult{
			Entry:      &entry,
			Streak:     streak.Describe(cal, upd.State, today),
			Award:      award,
			Challenges: completed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	es.cache.drop(ctx, uid)
	return &res, nil
}

// lockStreak reads the streak row FOR UPDATE. A user without entries has none
// yet and starts from the zero state.
func (es *EntryService) lockStreak(ctx context.Context, cal *streak.Calendar, uid uuid.UUID) (streak.State, error) {
	s, err := es.streaks.GetForUpdate(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStreakNotFound) {
			return streak.State{}, nil
		}
		return streak.State{}, errors.New("streaks repository error: " + err.Error())
	}
	return stateOf(cal, s), nil
}

func stateOf(cal *streak.Calendar, s *entity.Streak) streak.State {
	state := streak.State{Current: s.CurrentStreak, Longest: s.LongestStreak}
	if s.LastEntryDate != nil {
		last := cal.Anchor(*s.LastEntryDate)
		state.LastDate = &last
	}
	return state
}

func (es *EntryService) Get(ctx context.Context, uid, id uuid.UUID) (*entity.Entry, error) {
	entry, err := es.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return nil, err
		}
		return nil, errors.New("entries repository error: " + err.Error())
	}
	if entry.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return entry, nil
}

func (es *EntryService) List(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Entry, error) {
	pagination = normalizePagination(pagination)
	entries, err := es.entries.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	return entries, nil
}

// Update edits mood, notes and tags. The XP granted on creation is kept.
func (es *EntryService) Update(ctx context.Context, uid, id uuid.UUID, req *EntryRequest) (*entity.Entry, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	entry, err := es.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	entry.Mood = req.Mood
	entry.Notes = req.Notes
	entry.Tags = normalizeTags(req.Tags)
	entry.WordCount = countWords(req.Notes)
	err = es.entries.Update(ctx, entry)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return nil, err
		}
		return nil, errors.New("entries repository error: " + err.Error())
	}
	es.cache.drop(ctx, uid)
	return entry, nil
}

// Delete removes the entry. Streak, XP and badges already granted stay.
func (es *EntryService) Delete(ctx context.Context, uid, id uuid.UUID) error {
	if _, err := es.Get(ctx, uid, id); err != nil {
		return err
	}
	err := es.entries.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return err
		}
		return errors.New("entries repository error: " + err.Error())
	}
	es.cache.drop(ctx, uid)
	return nil
}

func (es *EntryService) MoodStats(ctx context.Context, uid uuid.UUID, days int) (*entity.MoodStats, error) {
	switch {
	case days < 0:
		return nil, errors.Join(errorvalues.ErrValidation, errors.New("days must not be negative"))
	case days == 0:
		days = defaultMoodDays
	case days > maxMoodDays:
		days = maxMoodDays
	}
	_, cal, err := userCalendar(ctx, es.users, es.calendar, uid)
	if err != nil {
		return nil, err
	}
	from := cal.Today().AddDate(0, 0, -(days - 1))
	series, err := es.entries.MoodSeries(ctx, uid, from)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	return summarizeMood(days, series), nil
}

func summarizeMood(days int, series []entity.MoodPoint) *entity.MoodStats {
	stats := &entity.MoodStats{Days: days, Series: series}
	if stats.Series == nil {
		stats.Series = []entity.MoodPoint{}
	}
	if len(series) == 0 {
		return stats
	}
	sum := 0
	stats.Min, stats.Max = series[0].Mood, series[0].Mood
	for _, p := range series {
		sum += p.Mood
		stats.Min = min(stats.Min, p.Mood)
		stats.Max = max(stats.Max, p.Mood)
	}
	stats.Count = len(series)
	stats.Average = math.Round(float64(sum)/float64(len(series))*100) / 100
	return stats
}

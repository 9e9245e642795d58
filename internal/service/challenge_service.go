package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/streak"
	"github.com/limbo/lumin/pkg/entity"
)

const DefaultDailyChallenges = 3

type ChallengeService struct {
	tx         repository.TransactorI
	users      repository.UsersRepositoryI
	challenges repository.ChallengesRepositoryI
	awarder    Awarder
	catalog    *gamification.Catalog
	calendar   *streak.Calendar
	cache      *DashboardCache
	daily      int
}

type ChallengeServiceOpts struct {
	Transactor     repository.TransactorI
	UsersRepo      repository.UsersRepositoryI
	ChallengesRepo repository.ChallengesRepositoryI
	Awarder        Awarder
	Catalog        *gamification.Catalog
	Calendar       *streak.Calendar
	Cache          *DashboardCache
	// Challenges generated per user per day
	Daily int
}

func NewChallengeService(opts ChallengeServiceOpts) *ChallengeService {
	if opts.Transactor == nil || opts.UsersRepo == nil || opts.ChallengesRepo == nil || opts.Awarder == nil || opts.Catalog == nil {
		log.Fatal("on challenge service provided nil dependencies")
	}
	if opts.Calendar == nil {
		opts.Calendar = streak.NewCalendar(nil, nil)
	}
	if opts.Daily <= 0 {
		opts.Daily = DefaultDailyChallenges
	}
	return &ChallengeService{
		tx:         opts.Transactor,
		users:      opts.UsersRepo,
		challenges: opts.ChallengesRepo,
		awarder:    opts.Awarder,
		catalog:    opts.Catalog,
		calendar:   opts.Calendar,
		cache:      opts.Cache,
		daily:      opts.Daily,
	}
}

// userCalendar loads the user and returns a calendar in their timezone.
func userCalendar(ctx context.Context, users repository.UsersRepositoryI, base *streak.Calendar, uid uuid.UUID) (*entity.User, *streak.Calendar, error) {
	user, err := users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("users repository error: " + err.Error())
	}
	return user, base.In(user.Timezone), nil
}

func (cs *ChallengeService) Today(ctx context.Context, uid uuid.UUID) ([]*entity.Challenge, error) {
	_, cal, err := userCalendar(ctx, cs.users, cs.calendar, uid)
	if err != nil {
		return nil, err
	}
	return cs.ensure(ctx, uid, cal.Today())
}

// Generate creates today's challenges for the user if they are missing and
// returns how many exist afterwards.
func (cs *ChallengeService) Generate(ctx context.Context, user *entity.User) (int, error) {
	list, err := cs.ensure(ctx, user.ID, cs.calendar.In(user.Timezone).Today())
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (cs *ChallengeService) ensure(ctx context.Context, uid uuid.UUID, day time.Time) ([]*entity.Challenge, error) {
	list, err := cs.challenges.GetByDate(ctx, uid, day)
	if err != nil {
		return nil, errors.New("challenges repository error: " + err.Error())
	}
	if len(list) > 0 {
		return list, nil
	}
	templates := cs.catalog.PickDaily(uid, day, cs.daily)
	if len(templates) == 0 {
		return []*entity.Challenge{}, nil
	}
	generated := make([]*entity.Challenge, 0, len(templates))
	for _, t := range templates {
		generated = append(generated, &entity.Challenge{
			UserID:        uid,
			ChallengeDate: day,
			TemplateKey:   t.Key,
			Title:         t.Title,
			Description:   t.Description,
			Kind:          t.Kind,
			Target:        t.Target,
			XPReward:      t.XPReward,
		})
	}
	err = cs.challenges.CreateMany(ctx, generated)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("challenges repository error: " + err.Error())
	}
	list, err = cs.challenges.GetByDate(ctx, uid, day)
	if err != nil {
		return nil, errors.New("challenges repository error: " + err.Error())
	}
	return list, nil
}

func (cs *ChallengeService) AddProgress(ctx context.Context, uid, id uuid.UUID, amount int) (*ChallengeResult, error) {
	if amount <= 0 {
		return nil, errorvalues.ErrInvalidProgress
	}
	return cs.update(ctx, uid, id, func(c *entity.Challenge) {
		c.Progress += amount
	})
}

// Complete finishes the challenge. Completing an already completed challenge
// returns it unchanged without an award.
func (cs *ChallengeService) Complete(ctx context.Context, uid, id uuid.UUID) (*ChallengeResult, error) {
	return cs.update(ctx, uid, id, func(c *entity.Challenge) {
		c.Progress = max(c.Progress, c.Target)
	})
}

func (cs *ChallengeService) update(ctx context.Context, uid, id uuid.UUID, change func(c *entity.Challenge)) (*ChallengeResult, error) {
	var res *ChallengeResult
	err := cs.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, cal, err := userCalendar(ctx, cs.users, cs.calendar, uid)
		if err != nil {
			return err
		}
		c, err := cs.challenges.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, errorvalues.ErrChallengeNotFound) {
				return err
			}
			return errors.New("challenges repository error: " + err.Error())
		}
		if c.UserID != uid {
			return errorvalues.ErrWrongOwner
		}
		if c.Completed {
			res = &ChallengeResult{Challenge: c}
			return nil
		}
		if cal.DaysBetween(cal.Anchor(c.ChallengeDate), cal.Today()) != 0 {
			return errorvalues.ErrChallengeExpired
		}
		change(c)
		res, err = cs.save(ctx, cal, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	if res.Award != nil || res.Challenge.Progress > 0 {
		cs.cache.drop(ctx, uid)
	}
	return res, nil
}

// save stores progress and, once the target is reached, completes the
// challenge and awards its XP. c must be locked by the caller.
func (cs *ChallengeService) save(ctx context.Context, cal *streak.Calendar, c *entity.Challenge) (*ChallengeResult, error) {
	res := &ChallengeResult{Challenge: c}
	completing := !c.Completed && c.Progress >= c.Target
	if completing {
		now := cal.Now()
		c.Progress = c.Target
		c.Completed = true
		c.CompletedAt = &now
	}
	err := cs.challenges.Update(ctx, c)
	if err != nil {
		if errors.Is(err, errorvalues.ErrChallengeNotFound) {
			return nil, err
		}
		return nil, errors.New("challenges repository error: " + err.Error())
	}
	if completing {
		res.Award, err = cs.awarder.Award(ctx, c.UserID, c.XPReward, SourceChallenge)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// advance moves today's open challenges forward. next returns the new
// progress of a locked challenge; unrelated kinds keep the current value.
// Only challenges completed by this call are returned.
func (cs *ChallengeService) advance(ctx context.Context, uid uuid.UUID, cal *streak.Calendar, next func(c *entity.Challenge) int) ([]*ChallengeResult, error) {
	list, err := cs.ensure(ctx, uid, cal.Today())
	if err != nil {
		return nil, err
	}
	completed := make([]*ChallengeResult, 0)
	for _, item := range list {
		if item.Completed || next(item) <= item.Progress {
			continue
		}
		c, err := cs.challenges.GetForUpdate(ctx, item.ID)
		if err != nil {
			return nil, errors.New("challenges repository error: " + err.Error())
		}
		progress := next(c)
		if c.Completed || progress <= c.Progress {
			continue
		}
		c.Progress = progress
		res, err := cs.save(ctx, cal, c)
		if err != nil {
			return nil, err
		}
		if res.Award != nil {
			completed = append(completed, res)
		}
	}
	return completed, nil
}

// trackEntry applies a freshly written entry to today's challenges.
func (cs *ChallengeService) trackEntry(ctx context.Context, uid uuid.UUID, cal *streak.Calendar, entry *entity.Entry) ([]*ChallengeResult, error) {
	return cs.advance(ctx, uid, cal, func(c *entity.Challenge) int {
		switch c.Kind {
		case gamification.KindJournalEntry, gamification.KindMoodCheckin:
			return c.Progress + 1
		case gamification.KindWordCount:
			return max(c.Progress, entry.WordCount)
		}
		return c.Progress
	})
}

func (cs *ChallengeService) trackGoalProgress(ctx context.Context, uid uuid.UUID, cal *streak.Calendar) ([]*ChallengeResult, error) {
	return cs.advance(ctx, uid, cal, func(c *entity.Challenge) int {
		if c.Kind == gamification.KindGoalProgress {
			return c.Progress + 1
		}
		return c.Progress
	})
}

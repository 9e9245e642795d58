package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/metrics"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/pkg/entity"
)

// XP sources used as metric labels
const (
	SourceEntry     = "journal_entry"
	SourceMilestone = "milestone"
	SourceGoal      = "goal"
	SourceChallenge = "challenge"
)

type ProgressService struct {
	tx      repository.TransactorI
	users   repository.UsersRepositoryI
	catalog *gamification.Catalog
}

func NewProgressService(tx repository.TransactorI, usersRepo repository.UsersRepositoryI, catalog *gamification.Catalog) *ProgressService {
	if tx == nil || usersRepo == nil || catalog == nil {
		log.Fatal("on progress service provided nil dependencies")
	}
	return &ProgressService{
		tx:      tx,
		users:   usersRepo,
		catalog: catalog,
	}
}

// Award adds amount XP, keeps the stored level equal to LevelForXP(xp) and
// unlocks badges reached by the user's current stats. A non-positive amount
// only re-evaluates badges.
func (ps *ProgressService) Award(ctx context.Context, uid uuid.UUID, amount int, source string) (*entity.XPAward, error) {
	var award gamification.Award
	var unlocked []string
	err := ps.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := ps.users.FindByID(ctx, uid)
		if err != nil {
			if errors.Is(err, errorvalues.ErrUserNotFound) {
				return err
			}
			return errors.New("users repository error: " + err.Error())
		}
		award = gamification.Apply(user.XP, 0)
		if amount > 0 {
			xp, err := ps.users.AddXP(ctx, uid, amount)
			if err != nil {
				if errors.Is(err, errorvalues.ErrUserNotFound) {
					return err
				}
				return errors.New("users repository error: " + err.Error())
			}
			award = gamification.Apply(xp-amount, amount)
		}
		if award.LevelAfter != user.Level {
			if err = ps.users.SetLevel(ctx, uid, award.LevelAfter); err != nil {
				return errors.New("users repository error: " + err.Error())
			}
		}
		stats, err := ps.users.Stats(ctx, uid)
		if err != nil {
			return errors.New("users repository error: " + err.Error())
		}
		unlocked = ps.catalog.Evaluate(gamification.Stats{
			Entries:             stats.Entries,
			Streak:              max(stats.CurrentStreak, stats.LongestStreak),
			Level:               award.LevelAfter,
			GoalsCompleted:      stats.GoalsCompleted,
			ChallengesCompleted: stats.ChallengesCompleted,
		}, user.Badges)
		if len(unlocked) > 0 {
			if err = ps.users.AddBadges(ctx, uid, unlocked); err != nil {
				return errors.New("users repository error: " + err.Error())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordXP(source, award.Amount, award.LeveledUp())
	metrics.RecordBadges(unlocked)
	return &entity.XPAward{
		Amount:      award.Amount,
		XPBefore:    award.XPBefore,
		XPAfter:     award.XPAfter,
		LevelBefore: award.LevelBefore,
		LevelAfter:  award.LevelAfter,
		LeveledUp:   award.LeveledUp(),
		NewBadges:   unlocked,
	}, nil
}

// mergeAwards folds consecutive awards into one, keeping the first "before"
// and the last "after" state.
func mergeAwards(awards ...*entity.XPAward) *entity.XPAward {
	var res *entity.XPAward
	for _, a := range awards {
		if a == nil {
			continue
		}
		if res == nil {
			merged := *a
			merged.NewBadges = append([]string(nil), a.NewBadges...)
			res = &merged
			continue
		}
		res.Amount += a.Amount
		res.XPAfter = a.XPAfter
		res.LevelAfter = a.LevelAfter
		res.LeveledUp = res.LevelAfter > res.LevelBefore
		res.NewBadges = append(res.NewBadges, a.NewBadges...)
	}
	return res
}

package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayGeneratesOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("challenger", "")

	first, err := e.challenges.Today(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, first, 3)
	second, err := e.challenges.Today(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, e.db.challenges, 3)

	expected := e.catalog.PickDaily(user.ID, e.calendar.Today(), 3)
	keys := make([]string, 0, len(expected))
	for _, tmpl := range expected {
		keys = append(keys, tmpl.Key)
	}
	for _, c := range first {
		assert.Contains(t, keys, c.TemplateKey)
		assert.False(t, c.Completed)
	}

	n, err := e.challenges.Generate(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, e.db.challenges, 3)
}

// addChallenge stores a challenge for today bypassing the random pick.
func addChallenge(e *env, uid uuid.UUID, kind string, target, xp int) *entity.Challenge {
	c := &entity.Challenge{
		ID:            uuid.New(),
		UserID:        uid,
		ChallengeDate: e.calendar.Today(),
		TemplateKey:   kind,
		Title:         kind,
		Kind:          kind,
		Target:        target,
		XPReward:      xp,
	}
	e.db.challenges[c.ID] = c
	return c
}

func TestAddProgressAndComplete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("challenger", "")
	stranger := e.db.addUser("stranger", "")
	c := addChallenge(e, user.ID, gamification.KindReflection, 3, 25)

	t.Run("partial progress", func(t *testing.T) {
		res, err := e.challenges.AddProgress(ctx, user.ID, c.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Challenge.Progress)
		assert.False(t, res.Challenge.Completed)
		assert.Nil(t, res.Award)
		assert.Equal(t, 0, user.XP)
	})
	t.Run("non positive amount", func(t *testing.T) {
		_, err := e.challenges.AddProgress(ctx, user.ID, c.ID, 0)
		assert.ErrorIs(t, err, errorvalues.ErrInvalidProgress)
	})
	t.Run("foreign challenge", func(t *testing.T) {
		_, err := e.challenges.AddProgress(ctx, stranger.ID, c.ID, 1)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("unknown challenge", func(t *testing.T) {
		_, err := e.challenges.Complete(ctx, user.ID, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrChallengeNotFound)
	})
	t.Run("reaching target completes", func(t *testing.T) {
		res, err := e.challenges.AddProgress(ctx, user.ID, c.ID, 5)
		require.NoError(t, err)
		assert.True(t, res.Challenge.Completed)
		assert.Equal(t, 3, res.Challenge.Progress)
		require.NotNil(t, res.Award)
		assert.Equal(t, 25, res.Award.Amount)
		assert.Contains(t, res.Award.NewBadges, "first_challenge")
		assert.Equal(t, 25, user.XP)
	})
	t.Run("completing twice awards once", func(t *testing.T) {
		res, err := e.challenges.Complete(ctx, user.ID, c.ID)
		require.NoError(t, err)
		assert.True(t, res.Challenge.Completed)
		assert.Nil(t, res.Award)
		assert.Equal(t, 25, user.XP)
	})
}

func TestCompleteExpiredChallenge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("late", "")
	c := addChallenge(e, user.ID, gamification.KindReflection, 1, 20)
	e.clock.addDays(1)

	_, err := e.challenges.Complete(ctx, user.ID, c.ID)
	assert.ErrorIs(t, err, errorvalues.ErrChallengeExpired)
	assert.Equal(t, 0, user.XP)
}

func TestEntryAdvancesChallenges(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("writer", "")
	journal := addChallenge(e, user.ID, gamification.KindJournalEntry, 1, 20)
	words := addChallenge(e, user.ID, gamification.KindWordCount, 150, 40)
	reflection := addChallenge(e, user.ID, gamification.KindReflection, 1, 20)

	res, err := e.entries.Create(ctx, user.ID, entryWithWords(40))
	require.NoError(t, err)
	require.Len(t, res.Challenges, 1)
	assert.Equal(t, journal.ID, res.Challenges[0].Challenge.ID)
	assert.True(t, e.db.challenges[journal.ID].Completed)
	assert.Equal(t, 40, e.db.challenges[words.ID].Progress)
	assert.False(t, e.db.challenges[words.ID].Completed)
	assert.Equal(t, 0, e.db.challenges[reflection.ID].Progress)
	assert.Equal(t, gamification.EntryXP+20, user.XP)
}

func entryWithWords(n int) *service.EntryRequest {
	return &service.EntryRequest{Mood: 6, Notes: strings.Repeat("word ", n)}
}

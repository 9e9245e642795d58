package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("profiled", "")
	user.XP = 150
	user.Level = gamification.LevelForXP(150)
	user.Badges = []string{"first_entry", "retired_badge"}
	last := e.calendar.Today().AddDate(0, 0, -3)
	e.db.streaks[user.ID] = &entity.Streak{UserID: user.ID, CurrentStreak: 4, LongestStreak: 9, LastEntryDate: &last}

	profile, err := e.dashboard.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Progress.Level)
	assert.Equal(t, 150, profile.Progress.XP)
	assert.Equal(t, 0, profile.Streak.Current, "missed days show as a broken streak")
	assert.True(t, profile.Streak.Broken)
	assert.Equal(t, 9, profile.Streak.Longest)
	require.Len(t, profile.Badges, 1)
	assert.Equal(t, "first_entry", profile.Badges[0].ID)
	assert.Equal(t, 4, e.db.streaks[user.ID].CurrentStreak, "stored streak changes only on the next entry")

	_, err = e.dashboard.Profile(ctx, uuid.New())
	assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
}

func TestProfileWithoutStreak(t *testing.T) {
	e := newEnv(t)
	user := e.db.addUser("fresh", "")

	profile, err := e.dashboard.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Streak.Current)
	assert.False(t, profile.Streak.Broken)
	assert.Equal(t, 1, profile.Progress.Level)
	assert.Empty(t, profile.Badges)
}

func TestDashboard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.db.addUser("dashing", "")
	_, err := e.goals.Create(ctx, user.ID, runningGoal())
	require.NoError(t, err)

	first, err := e.dashboard.Dashboard(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, first.TodayEntry)
	assert.Empty(t, first.RecentEntries)
	assert.Len(t, first.ActiveGoals, 1)
	assert.Len(t, first.Challenges, service.DefaultDailyChallenges)
	require.NotNil(t, first.Mood)
	assert.Equal(t, 0, first.Mood.Count)
	assert.Equal(t, 1, e.store.Len())

	t.Run("served from cache", func(t *testing.T) {
		user.XP = 999
		cached, err := e.dashboard.Dashboard(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, cached.User.XP)
		assert.Len(t, cached.ActiveGoals, 1)
		user.XP = 0
	})
	t.Run("entry invalidates the cache", func(t *testing.T) {
		_, err := e.entries.Create(ctx, user.ID, &service.EntryRequest{Mood: 9, Notes: "finally"})
		require.NoError(t, err)
		d, err := e.dashboard.Dashboard(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, d.TodayEntry)
		assert.Equal(t, 9, d.TodayEntry.Mood)
		assert.Len(t, d.RecentEntries, 1)
		assert.Equal(t, 1, d.Streak.Current)
		assert.True(t, d.Streak.DoneToday)
		assert.Equal(t, e.db.users[user.ID].XP, d.User.XP)
		assert.Equal(t, 1, d.Mood.Count)
		assert.Equal(t, 9.0, d.Mood.Average)
	})
	t.Run("expires after ttl", func(t *testing.T) {
		user.XP += 7
		d, err := e.dashboard.Dashboard(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.XP-7, d.User.XP)

		e.clock.now = e.clock.now.Add(service.DefaultDashboardTTL + time.Second)
		d, err = e.dashboard.Dashboard(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.XP, d.User.XP)
	})
}

func TestDashboardCacheDisabled(t *testing.T) {
	var dc *service.DashboardCache
	ctx := context.Background()
	uid := uuid.New()
	_, err := dc.Get(ctx, uid)
	assert.Error(t, err)
	assert.NoError(t, dc.Set(ctx, uid, &service.Dashboard{}))
	assert.NoError(t, dc.Invalidate(ctx, uid))
}

// Package gamification holds the pure XP, level, badge and challenge rules.
package gamification

import "math"

const (
	EntryXP           = 50
	StreakBonusPerDay = 5
	MaxStreakBonus    = 50
	DefaultGoalXP     = 200
	DefaultMilestone  = 25
	DefaultChallenge  = 30

	baseLevelXP = 100
	levelGrowth = 1.5
	// Keeps Threshold inside int range on 64-bit platforms.
	maxLevel = 90
)

// XPForLevel returns the XP needed to advance from level n to level n+1.
func XPForLevel(n int) int {
	if n < 1 {
		n = 1
	}
	return int(math.Floor(baseLevelXP * math.Pow(levelGrowth, float64(n-1))))
}

// Threshold returns the cumulative XP at which level l starts.
func Threshold(l int) int {
	total := 0
	for k := 1; k < l && k < maxLevel; k++ {
		total += XPForLevel(k)
	}
	return total
}

func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := 1
	next := XPForLevel(1)
	for xp >= next && level < maxLevel {
		level++
		next += XPForLevel(level)
	}
	return level
}

type LevelProgress struct {
	Level          int     `json:"level"`
	XP             int     `json:"xp"`
	LevelStartXP   int     `json:"level_start_xp"`
	NextLevelXP    int     `json:"next_level_xp"`
	XPIntoLevel    int     `json:"xp_into_level"`
	XPToNextLevel  int     `json:"xp_to_next_level"`
	PercentOfLevel float64 `json:"percent_of_level"`
}

func Progress(xp int) LevelProgress {
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)
	start := Threshold(level)
	span := XPForLevel(level)
	into := xp - start
	return LevelProgress{
		Level:          level,
		XP:             xp,
		LevelStartXP:   start,
		NextLevelXP:    start + span,
		XPIntoLevel:    into,
		XPToNextLevel:  span - into,
		PercentOfLevel: math.Round(float64(into)/float64(span)*10000) / 100,
	}
}

type Award struct {
	Amount      int
	XPBefore    int
	XPAfter     int
	LevelBefore int
	LevelAfter  int
}

func (a Award) LeveledUp() bool {
	return a.LevelAfter > a.LevelBefore
}

// Apply adds amount to xp. Non-positive amounts leave the state untouched.
func Apply(xp, amount int) Award {
	before := LevelForXP(xp)
	if amount <= 0 {
		return Award{XPBefore: xp, XPAfter: xp, LevelBefore: before, LevelAfter: before}
	}
	after := xp + amount
	return Award{
		Amount:      amount,
		XPBefore:    xp,
		XPAfter:     after,
		LevelBefore: before,
		LevelAfter:  LevelForXP(after),
	}
}

// EntryReward is the XP granted for a journal entry written on a streak of
// the given length. The first day of a streak earns the base reward only.
func EntryReward(streak int) int {
	bonus := (streak - 1) * StreakBonusPerDay
	if bonus > MaxStreakBonus {
		bonus = MaxStreakBonus
	}
	if bonus < 0 {
		bonus = 0
	}
	return EntryXP + bonus
}

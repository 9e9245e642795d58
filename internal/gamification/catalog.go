package gamification

import (
	_ "embed"
	"errors"
	"hash/fnv"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type Criterion string

const (
	CriterionEntries             Criterion = "entries"
	CriterionStreak              Criterion = "streak"
	CriterionLevel               Criterion = "level"
	CriterionGoalsCompleted      Criterion = "goals_completed"
	CriterionChallengesCompleted Criterion = "challenges_completed"
)

const (
	KindJournalEntry = "journal_entry"
	KindWordCount    = "word_count"
	KindGoalProgress = "goal_progress"
	KindMoodCheckin  = "mood_checkin"
	KindReflection   = "reflection"
)

type Badge struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Criterion   Criterion `yaml:"criterion" json:"criterion"`
	Threshold   int       `yaml:"threshold" json:"threshold"`
}

type ChallengeTemplate struct {
	Key         string `yaml:"key"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
	Target      int    `yaml:"target"`
	XPReward    int    `yaml:"xp_reward"`
}

// Stats is the snapshot badge criteria are evaluated against.
type Stats struct {
	Entries             int
	Streak              int
	Level               int
	GoalsCompleted      int
	ChallengesCompleted int
}

func (s Stats) value(c Criterion) int {
	switch c {
	case CriterionEntries:
		return s.Entries
	case CriterionStreak:
		return s.Streak
	case CriterionLevel:
		return s.Level
	case CriterionGoalsCompleted:
		return s.GoalsCompleted
	case CriterionChallengesCompleted:
		return s.ChallengesCompleted
	}
	return 0
}

type Catalog struct {
	Badges     []Badge             `yaml:"badges"`
	Challenges []ChallengeTemplate `yaml:"challenges"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	defaultCatalog *Catalog
	catalogErr     error
	catalogOnce    sync.Once
)

// DefaultCatalog returns the catalog embedded into the binary.
func DefaultCatalog() (*Catalog, error) {
	catalogOnce.Do(func() {
		defaultCatalog, catalogErr = ParseCatalog(catalogYAML)
	})
	return defaultCatalog, catalogErr
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.New("parsing catalog error: " + err.Error())
	}
	seen := make(map[string]struct{}, len(c.Challenges))
	for _, t := range c.Challenges {
		if t.Key == "" || t.Target < 1 {
			return nil, errors.New("invalid challenge template: " + t.Key)
		}
		if _, ok := seen[t.Key]; ok {
			return nil, errors.New("duplicated challenge template: " + t.Key)
		}
		seen[t.Key] = struct{}{}
	}
	return &c, nil
}

// Evaluate returns ids of badges reached by stats and not yet owned, in
// catalog order.
func (c *Catalog) Evaluate(stats Stats, owned []string) []string {
	var unlocked []string
	for _, b := range c.Badges {
		if slices.Contains(owned, b.ID) {
			continue
		}
		if stats.value(b.Criterion) >= b.Threshold {
			unlocked = append(unlocked, b.ID)
		}
	}
	return unlocked
}

func (c *Catalog) Badge(id string) (Badge, bool) {
	for _, b := range c.Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// PickDaily chooses n distinct templates for the user and day. The choice is
// stable for the same inputs so repeated generation yields the same set.
func (c *Catalog) PickDaily(uid uuid.UUID, day time.Time, n int) []ChallengeTemplate {
	if n > len(c.Challenges) {
		n = len(c.Challenges)
	}
	if n <= 0 {
		return nil
	}
	type scored struct {
		t     ChallengeTemplate
		score uint64
	}
	date := day.Format(time.DateOnly)
	pool := make([]scored, 0, len(c.Challenges))
	for _, t := range c.Challenges {
		h := fnv.New64a()
		h.Write(uid[:])
		h.Write([]byte(date))
		h.Write([]byte(t.Key))
		pool = append(pool, scored{t: t, score: h.Sum64()})
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].score < pool[j].score })
	result := make([]ChallengeTemplate, 0, n)
	for _, s := range pool[:n] {
		result = append(result, s.t)
	}
	return result
}

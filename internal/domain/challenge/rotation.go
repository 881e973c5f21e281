package challenge

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Challenges generated per refresh. The weekly pool instead draws one
// template per kind present in its catalog.
const (
	dailyPoolSize   = 3
	monthlyPoolSize = 2
)

// Pool is one rotating set of challenges plus its archive.
type Pool struct {
	Active         []Challenge `json:"active"`
	History        []Challenge `json:"history"`
	LastRefreshKey string      `json:"last_refresh_key,omitempty"`
}

// State holds the three independent challenge pools.
type State struct {
	Daily   Pool `json:"daily"`
	Weekly  Pool `json:"weekly"`
	Monthly Pool `json:"monthly"`
}

// Pool returns the pool for a period.
func (s *State) Pool(period Period) *Pool {
	switch period {
	case PeriodDaily:
		return &s.Daily
	case PeriodWeekly:
		return &s.Weekly
	case PeriodMonthly:
		return &s.Monthly
	}
	return nil
}

// Active returns the current-pool challenges. An empty period returns all
// three pools' challenges.
func (s *State) Active(period Period) []Challenge {
	if period == "" {
		all := append([]Challenge{}, s.Daily.Active...)
		all = append(all, s.Weekly.Active...)
		return append(all, s.Monthly.Active...)
	}
	pool := s.Pool(period)
	if pool == nil {
		return nil
	}
	return append([]Challenge{}, pool.Active...)
}

// ApplyProgress adds amount to every active, non-completed challenge of the
// matching kind across all pools and returns the challenges that completed
// because of this call, each exactly once. Completed challenges are never
// mutated again.
func (s *State) ApplyProgress(kind Kind, amount int, now time.Time) []Challenge {
	var completed []Challenge
	for _, period := range []Period{PeriodDaily, PeriodWeekly, PeriodMonthly} {
		pool := s.Pool(period)
		for i := range pool.Active {
			c := &pool.Active[i]
			if c.Kind != kind || c.IsCompleted() {
				continue
			}
			c.Current += amount
			if c.Current >= c.Target {
				completedAt := now
				c.CompletedAt = &completedAt
				completed = append(completed, *c)
			}
		}
	}
	return completed
}

// Engine rotates the challenge pools. The random source is injected so
// template selection is reproducible in tests.
type Engine struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewEngine creates a rotation engine. A nil catalog falls back to the
// built-in templates; a nil rng falls back to a time-seeded source.
func NewEngine(catalog *Catalog, rng *rand.Rand) *Engine {
	if catalog == nil {
		catalog = BuiltinCatalog()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{catalog: catalog, rng: rng}
}

// Refresh rolls every pool over to the period containing now. Pools whose
// stored refresh key already matches the current period key are left
// untouched, so calling Refresh repeatedly within a period produces no
// additional churn.
func (e *Engine) Refresh(state *State, now time.Time) {
	for _, period := range []Period{PeriodDaily, PeriodWeekly, PeriodMonthly} {
		e.refreshPool(state.Pool(period), period, now)
	}
}

func (e *Engine) refreshPool(pool *Pool, period Period, now time.Time) {
	key := PeriodKey(period, now)
	if pool.LastRefreshKey == key {
		return
	}

	// Archive the outgoing set. Non-completed challenges are marked expired
	// rather than deleted so history stays auditable.
	for _, c := range pool.Active {
		if !c.IsCompleted() {
			c.Expired = true
		}
		pool.History = append(pool.History, c)
	}

	pool.Active = e.generate(period, now)
	pool.LastRefreshKey = key
}

func (e *Engine) generate(period Period, now time.Time) []Challenge {
	templates := e.catalog.Templates(period)
	expiresAt := PeriodEnd(period, now)

	var picked []Template
	switch period {
	case PeriodWeekly:
		picked = e.pickOnePerKind(templates)
	case PeriodMonthly:
		picked = e.pickWithoutReplacement(templates, monthlyPoolSize)
	default:
		picked = e.pickWithoutReplacement(templates, dailyPoolSize)
	}

	challenges := make([]Challenge, 0, len(picked))
	for _, t := range picked {
		challenges = append(challenges, Challenge{
			ID:           uuid.NewString(),
			Kind:         t.Kind,
			Description:  t.Description,
			Target:       t.Target,
			RewardPoints: t.RewardPoints,
			Period:       period,
			ExpiresAt:    expiresAt,
		})
	}
	return challenges
}

// pickWithoutReplacement draws up to n distinct templates, skipping any
// kind+description combination already drawn.
func (e *Engine) pickWithoutReplacement(templates []Template, n int) []Template {
	picked := make([]Template, 0, n)
	seen := make(map[string]bool)
	for _, i := range e.rng.Perm(len(templates)) {
		if len(picked) == n {
			break
		}
		t := templates[i]
		key := string(t.Kind) + "|" + t.Description
		if seen[key] {
			continue
		}
		seen[key] = true
		picked = append(picked, t)
	}
	return picked
}

// pickOnePerKind draws one random template for each kind present in the
// catalog. Kinds are visited in sorted order so a seeded rng is reproducible.
func (e *Engine) pickOnePerKind(templates []Template) []Template {
	byKind := make(map[Kind][]Template)
	for _, t := range templates {
		byKind[t.Kind] = append(byKind[t.Kind], t)
	}

	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	picked := make([]Template, 0, len(kinds))
	for _, k := range kinds {
		candidates := byKind[Kind(k)]
		picked = append(picked, candidates[e.rng.Intn(len(candidates))])
	}
	return picked
}

// PeriodKey returns the canonical identifier of the period containing now:
// the calendar day, the ISO week's Monday, or the month start.
func PeriodKey(period Period, now time.Time) string {
	switch period {
	case PeriodWeekly:
		return weekStart(now).Format("2006-01-02")
	case PeriodMonthly:
		return now.UTC().Format("2006-01")
	default:
		return now.UTC().Format("2006-01-02")
	}
}

// PeriodEnd returns the instant the period containing now expires.
func PeriodEnd(period Period, now time.Time) time.Time {
	switch period {
	case PeriodWeekly:
		return weekStart(now).AddDate(0, 0, 7)
	case PeriodMonthly:
		y, m, _ := now.UTC().Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	default:
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	}
}

// weekStart returns the Monday midnight (UTC) of the ISO week containing t.
func weekStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

package services

import (
	"sort"
	"strings"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

// ScoreFunc computes a similarity score in [0,1] between a normalized query
// and a normalized candidate value.
type ScoreFunc func(query, candidate string) float64

// MatcherConfig holds the injectable matching knobs. Threshold is the
// acceptance floor; Scorer the similarity measure; PreferUsage picks the
// higher usage_count candidate on score ties (falling back to lexicographic
// value order either way, so results stay deterministic).
type MatcherConfig struct {
	Threshold   float64
	Scorer      ScoreFunc
	PreferUsage bool
}

// DefaultMatcherConfig returns the default matching configuration
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		Threshold:   0.8,
		Scorer:      CombinedRatio,
		PreferUsage: true,
	}
}

// Match is one accepted fuzzy-match result
type Match struct {
	Identity entities.Identity
	Score    float64
}

type candidate struct {
	identity   entities.Identity
	normalized string
	usage      int
}

// Matcher resolves free-text component names to canonical identities.
// Category is inferred from keyword cues first; values are only ever
// compared within one category.
type Matcher struct {
	config     MatcherConfig
	byCategory map[entities.Category][]candidate
}

// NewMatcher builds a matcher over the canonical identities of the given specs
func NewMatcher(specs []entities.ComponentSpec, config MatcherConfig) *Matcher {
	if config.Scorer == nil {
		config.Scorer = CombinedRatio
	}
	m := &Matcher{
		config:     config,
		byCategory: make(map[entities.Category][]candidate),
	}
	for _, spec := range specs {
		cat := spec.Identity.Category
		m.byCategory[cat] = append(m.byCategory[cat], candidate{
			identity:   spec.Identity,
			normalized: normalizeValue(cat, spec.Identity.Value),
			usage:      spec.UsageCount,
		})
	}
	// Deterministic candidate order regardless of input order
	for cat := range m.byCategory {
		pool := m.byCategory[cat]
		sort.Slice(pool, func(i, j int) bool {
			return pool[i].identity.Key() < pool[j].identity.Key()
		})
	}
	return m
}

// Match resolves a free-text label to a canonical identity. The cascade is
// exact normalized equality, then fuzzy scoring against every candidate in
// the inferred category (and subtype, when the label names one). Anything
// below the threshold returns an UnmatchedError for manual resolution.
func (m *Matcher) Match(name string) (Match, error) {
	cat := InferCategory(name)
	subtype := inferSubtype(cat, name)
	query := normalizeValue(cat, name)

	pool := m.pool(cat, subtype)

	best := Match{}
	bestUsage := -1
	for _, cand := range pool {
		score := 1.0
		if query != cand.normalized {
			score = m.config.Scorer(query, cand.normalized)
		}
		if m.better(score, cand, best, bestUsage) {
			best = Match{Identity: cand.identity, Score: score}
			bestUsage = cand.usage
		}
	}

	if best.Score < m.config.Threshold || bestUsage < 0 {
		return Match{}, &entities.UnmatchedError{Name: name, Category: cat, BestScore: best.Score}
	}
	return best, nil
}

// better decides whether cand at score beats the current best, applying the
// configured tie-break order.
func (m *Matcher) better(score float64, cand candidate, best Match, bestUsage int) bool {
	if bestUsage < 0 || score > best.Score {
		return true
	}
	if score < best.Score {
		return false
	}
	if m.config.PreferUsage && cand.usage != bestUsage {
		return cand.usage > bestUsage
	}
	return cand.identity.Key() < best.Identity.Key()
}

// pool selects the candidate pool for a category. Labels with no category
// cue (bare part numbers like "TL072") are matched against the
// identifier-named pools only, never against value-bearing categories.
func (m *Matcher) pool(cat entities.Category, subtype string) []candidate {
	if cat == entities.CategoryUnknown {
		var joint []candidate
		for _, c := range []entities.Category{entities.Diode, entities.Transistor, entities.IC} {
			joint = append(joint, m.byCategory[c]...)
		}
		return joint
	}
	pool := m.byCategory[cat]
	if subtype == "" {
		return pool
	}
	restricted := make([]candidate, 0, len(pool))
	for _, cand := range pool {
		if strings.EqualFold(cand.identity.Subtype, subtype) {
			restricted = append(restricted, cand)
		}
	}
	if len(restricted) == 0 {
		return pool
	}
	return restricted
}

// normalizeValue normalizes a name for comparison: strip the category's
// qualifier words, canonicalize the unit suffix, fold case, collapse
// whitespace. "4.7k" and "4.7K" compare equal.
func normalizeValue(cat entities.Category, name string) string {
	stripped := NormalizeUnitNotation(StripQualifiers(cat, name))
	return strings.ToLower(collapseWhitespace(stripped))
}

// inferSubtype extracts an explicit subtype cue from a label, used to narrow
// the candidate pool before scoring.
func inferSubtype(cat entities.Category, name string) string {
	lower := strings.ToLower(name)
	var cues []string
	switch cat {
	case entities.Capacitor:
		cues = []string{"ceramic", "film", "electrolytic"}
	case entities.Transistor:
		cues = []string{"npn", "pnp", "jfet", "mosfet"}
	case entities.LED:
		cues = []string{"3mm", "5mm"}
	default:
		return ""
	}
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return cue
		}
	}
	return ""
}

// CombinedRatio is the default scorer: the better of the edit-distance ratio
// and the token-set ratio, so both near-miss spellings and word-order
// differences score high.
func CombinedRatio(query, candidate string) float64 {
	edit := EditRatio(query, candidate)
	token := TokenSetRatio(query, candidate)
	if token > edit {
		return token
	}
	return edit
}

// EditRatio is a Levenshtein-based similarity ratio in [0,1]
func EditRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// TokenSetRatio is the Dice coefficient over the distinct token sets
func TokenSetRatio(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1.0
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}
	common := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			common++
		}
	}
	return 2.0 * float64(common) / float64(len(ta)+len(tb))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

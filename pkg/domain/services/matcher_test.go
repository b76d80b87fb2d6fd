package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

func matcherSpecs() []entities.ComponentSpec {
	return []entities.ComponentSpec{
		{Identity: entities.Identity{Category: entities.Resistor, Value: "4.7K"}, UsageCount: 12},
		{Identity: entities.Identity{Category: entities.Resistor, Value: "10K"}, UsageCount: 30},
		{Identity: entities.Identity{Category: entities.Capacitor, Subtype: "ceramic", Value: "100nF"}, UsageCount: 25},
		{Identity: entities.Identity{Category: entities.Capacitor, Subtype: "film", Value: "100nF"}, UsageCount: 8},
		{Identity: entities.Identity{Category: entities.Diode, Value: "1N4148"}, UsageCount: 18},
		{Identity: entities.Identity{Category: entities.Transistor, Subtype: "npn", Value: "2N3904"}, UsageCount: 10},
		{Identity: entities.Identity{Category: entities.IC, Value: "TL072"}, UsageCount: 15},
	}
}

func TestMatcherExactNormalized(t *testing.T) {
	m := NewMatcher(matcherSpecs(), DefaultMatcherConfig())

	match, err := m.Match("4.7k resistor")
	require.NoError(t, err)
	assert.Equal(t, "resistor//4.7K", match.Identity.Key())
	assert.Equal(t, 1.0, match.Score)
}

func TestMatcherSubtypeCueRestrictsPool(t *testing.T) {
	m := NewMatcher(matcherSpecs(), DefaultMatcherConfig())

	// Two 100nF candidates exist; the ceramic cue must pick the ceramic one
	// even though the film candidate normalizes to the same value.
	match, err := m.Match("100nF Ceramic")
	require.NoError(t, err)
	assert.Equal(t, "capacitor/ceramic/100nF", match.Identity.Key())

	match, err = m.Match("100nF Film Cap")
	require.NoError(t, err)
	assert.Equal(t, "capacitor/film/100nF", match.Identity.Key())
}

func TestMatcherUsageTieBreak(t *testing.T) {
	specs := []entities.ComponentSpec{
		{Identity: entities.Identity{Category: entities.Capacitor, Subtype: "ceramic", Value: "100nF"}, UsageCount: 25},
		{Identity: entities.Identity{Category: entities.Capacitor, Subtype: "film", Value: "100nF"}, UsageCount: 8},
	}
	m := NewMatcher(specs, DefaultMatcherConfig())

	// No subtype cue: both candidates score 1.0, the higher usage count wins
	match, err := m.Match("100nF Capacitor")
	require.NoError(t, err)
	assert.Equal(t, "capacitor/ceramic/100nF", match.Identity.Key())
}

func TestMatcherBarePartNumber(t *testing.T) {
	m := NewMatcher(matcherSpecs(), DefaultMatcherConfig())

	// No category cue: matched against the identifier-named pools
	match, err := m.Match("TL072")
	require.NoError(t, err)
	assert.Equal(t, "ic//TL072", match.Identity.Key())

	match, err = m.Match("2N3904")
	require.NoError(t, err)
	assert.Equal(t, "transistor/npn/2N3904", match.Identity.Key())
}

func TestMatcherFuzzyNearMiss(t *testing.T) {
	m := NewMatcher(matcherSpecs(), DefaultMatcherConfig())

	// "100n" vs "100nf" is an edit ratio of exactly 0.8
	match, err := m.Match("100n ceramic cap")
	require.NoError(t, err)
	assert.Equal(t, "capacitor/ceramic/100nF", match.Identity.Key())
	assert.InDelta(t, 0.8, match.Score, 0.001)
}

func TestMatcherUnmatched(t *testing.T) {
	m := NewMatcher(matcherSpecs(), DefaultMatcherConfig())

	_, err := m.Match("Enclosure 125B")
	require.Error(t, err)

	var unmatched *entities.UnmatchedError
	require.True(t, errors.As(err, &unmatched))
	assert.Equal(t, "Enclosure 125B", unmatched.Name)
	assert.Less(t, unmatched.BestScore, 0.8)
}

func TestMatcherNeverCrossesValueCategories(t *testing.T) {
	m := NewMatcher(matcherSpecs(), DefaultMatcherConfig())

	// A resistor label must never resolve to a capacitor value, even when
	// the strings are close.
	match, err := m.Match("10K Resistor")
	require.NoError(t, err)
	assert.Equal(t, entities.Resistor, match.Identity.Category)
}

func TestMatcherDeterministicAcrossInputOrder(t *testing.T) {
	specs := matcherSpecs()
	reversed := make([]entities.ComponentSpec, len(specs))
	for i, spec := range specs {
		reversed[len(specs)-1-i] = spec
	}

	a := NewMatcher(specs, DefaultMatcherConfig())
	b := NewMatcher(reversed, DefaultMatcherConfig())

	for _, name := range []string{"4.7k resistor", "100nF Capacitor", "TL072", "1N4148"} {
		ma, errA := a.Match(name)
		mb, errB := b.Match(name)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, ma.Identity.Key(), mb.Identity.Key(), "input order changed result for %q", name)
	}
}

package category

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patterns helper: the slice order stands in for (priority desc, id asc)
// store order, which is what the matcher expects.
func compiled(t *testing.T, patterns ...Pattern) []compiledPattern {
	t.Helper()
	return compileAll(patterns)
}

func TestMatch_WordBoundary(t *testing.T) {
	fuel := uuid.New()

	set := compiled(t, Pattern{CategoryID: fuel, CategoryName: "Fuel", Pattern: "BP"})

	m := matchDescription(set, "BP GASOLINEIRA NORTE")
	require.NotNil(t, m)
	assert.Equal(t, fuel, m.CategoryID)

	assert.Nil(t, matchDescription(set, "TRANSFERENCIA BPI CONTA"))
}

func TestMatch_ExclusionPrecedence(t *testing.T) {
	fuel := uuid.New()

	set := compiled(t,
		Pattern{CategoryID: fuel, CategoryName: "Fuel", Pattern: "BP"},
		Pattern{CategoryID: fuel, CategoryName: "Fuel", Pattern: "!BPI"},
	)

	assert.Nil(t, matchDescription(set, "BP BPI STATION"))

	set = compiled(t,
		Pattern{CategoryID: fuel, CategoryName: "Fuel", Pattern: "GALP"},
		Pattern{CategoryID: fuel, CategoryName: "Fuel", Pattern: "!BPI"},
	)

	m := matchDescription(set, "GALP STATION NORTE")
	require.NotNil(t, m)
	assert.Equal(t, fuel, m.CategoryID)
}

func TestMatch_CumulativeScoring(t *testing.T) {
	catA := uuid.New()
	catB := uuid.New()

	set := compiled(t,
		Pattern{CategoryID: catA, CategoryName: "A", Pattern: "mcdonald", Priority: 5},
		Pattern{CategoryID: catB, CategoryName: "B", Pattern: "mcdonald", Priority: 1},
		Pattern{CategoryID: catB, CategoryName: "B", Pattern: "food", Priority: 1},
	)

	// A scores 6 on a single pattern; B's two patterns only reach 2+2=4 even
	// when both match, and here only one does.
	m := matchDescription(set, "MCDONALD AEROPORTO")
	require.NotNil(t, m)
	assert.Equal(t, catA, m.CategoryID)
	assert.Equal(t, "A", m.CategoryName)
}

func TestMatch_TieGoesToFirstSeen(t *testing.T) {
	catA := uuid.New()
	catB := uuid.New()

	set := compiled(t,
		Pattern{CategoryID: catA, CategoryName: "A", Pattern: "GALP", Priority: 2},
		Pattern{CategoryID: catB, CategoryName: "B", Pattern: "POSTO", Priority: 2},
	)

	m := matchDescription(set, "GALP POSTO LISBOA")
	require.NotNil(t, m)
	assert.Equal(t, catA, m.CategoryID)
}

func TestMatch_RegexPattern(t *testing.T) {
	transport := uuid.New()

	set := compiled(t, Pattern{CategoryID: transport, CategoryName: "Transport", Pattern: `regex:^UBER\s`})

	require.NotNil(t, matchDescription(set, "UBER TRIP LISBOA"))
	assert.Nil(t, matchDescription(set, "REFUND UBER TRIP"))
}

func TestMatch_RegexIsCaseInsensitive(t *testing.T) {
	cat := uuid.New()

	set := compiled(t, Pattern{CategoryID: cat, Pattern: "regex:netflix"})

	assert.NotNil(t, matchDescription(set, "NETFLIX.COM AMSTERDAM"))
}

func TestMatch_InvalidRegexIsSkipped(t *testing.T) {
	catA := uuid.New()
	catB := uuid.New()

	set := compiled(t,
		Pattern{CategoryID: catA, CategoryName: "A", Pattern: "regex:[invalid", Priority: 10},
		Pattern{CategoryID: catB, CategoryName: "B", Pattern: "GALP"},
	)

	// The malformed pattern never matches; the next pattern still can.
	m := matchDescription(set, "GALP POSTO")
	require.NotNil(t, m)
	assert.Equal(t, catB, m.CategoryID)
}

func TestMatch_ExcludedRegexForm(t *testing.T) {
	cat := uuid.New()

	set := compiled(t,
		Pattern{CategoryID: cat, CategoryName: "Shopping", Pattern: "AMAZON"},
		Pattern{CategoryID: cat, CategoryName: "Shopping", Pattern: `!regex:AMAZON\s+PRIME`},
	)

	require.NotNil(t, matchDescription(set, "AMAZON MARKETPLACE"))
	assert.Nil(t, matchDescription(set, "AMAZON PRIME SUBSCRIPTION"))
}

func TestMatch_NoPatterns(t *testing.T) {
	assert.Nil(t, matchDescription(nil, "ANYTHING"))
}

func TestCompile_RoundTripGrammar(t *testing.T) {
	tests := []struct {
		pattern string
		exclude bool
	}{
		{"GALP", false},
		{"!BPI", true},
		{"regex:^UBER", false},
		{"!regex:^UBER", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			cp, ok := compile(Pattern{Pattern: tt.pattern})
			require.True(t, ok)
			assert.Equal(t, tt.exclude, cp.exclude)
		})
	}
}

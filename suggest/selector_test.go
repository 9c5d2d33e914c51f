package suggest

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodbites/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Mood{{ID: "many"}, {ID: "one"}, {ID: "none"}},
		[]catalog.FoodSuggestion{
			{ID: "a", MoodID: "many"},
			{ID: "b", MoodID: "many"},
			{ID: "c", MoodID: "many"},
			{ID: "solo", MoodID: "one"},
		},
	)
	require.NoError(t, err)
	return c
}

func TestSelector_Pick(t *testing.T) {
	s := NewSelector(testCatalog(t), WithRand(rand.New(rand.NewPCG(1, 2))))

	t.Run("no suggestions", func(t *testing.T) {
		_, ok := s.Pick("none")
		assert.False(t, ok)
		_, ok = s.Pick("unknown")
		assert.False(t, ok)
	})

	t.Run("only candidates of the mood", func(t *testing.T) {
		seen := map[string]int{}
		for i := 0; i < 300; i++ {
			got, ok := s.Pick("many")
			require.True(t, ok)
			assert.Equal(t, "many", got.MoodID)
			seen[got.ID]++
		}
		assert.Len(t, seen, 3, "every candidate is reachable")
	})

	t.Run("single candidate", func(t *testing.T) {
		got, ok := s.Pick("one")
		require.True(t, ok)
		assert.Equal(t, "solo", got.ID)
	})
}

func TestSelector_PickDifferent(t *testing.T) {
	s := NewSelector(testCatalog(t), WithRand(rand.New(rand.NewPCG(3, 4))))

	tests := []struct {
		name    string
		moodID  string
		current string
		wantOK  bool
		check   func(t *testing.T, got catalog.FoodSuggestion)
	}{
		{
			name:    "never repeats the current pick",
			moodID:  "many",
			current: "b",
			wantOK:  true,
			check: func(t *testing.T, got catalog.FoodSuggestion) {
				assert.NotEqual(t, "b", got.ID)
				assert.Equal(t, "many", got.MoodID)
			},
		},
		{
			name:    "single candidate repeats",
			moodID:  "one",
			current: "solo",
			wantOK:  true,
			check: func(t *testing.T, got catalog.FoodSuggestion) {
				assert.Equal(t, "solo", got.ID)
			},
		},
		{
			name:    "current from another mood",
			moodID:  "many",
			current: "solo",
			wantOK:  true,
			check: func(t *testing.T, got catalog.FoodSuggestion) {
				assert.Contains(t, []string{"a", "b", "c"}, got.ID)
			},
		},
		{
			name:    "no suggestions",
			moodID:  "none",
			current: "a",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				got, ok := s.PickDifferent(tt.moodID, tt.current)
				require.Equal(t, tt.wantOK, ok)
				if tt.check != nil {
					tt.check(t, got)
				}
			}
		})
	}
}

func TestSelector_PickDifferentRedraws(t *testing.T) {
	draws := []int{1, 1, 1, 0}
	s := NewSelector(testCatalog(t))
	s.intn = func(n int) int {
		d := draws[0]
		draws = draws[1:]
		return d
	}

	got, ok := s.PickDifferent("many", "b")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
	assert.Empty(t, draws)
}

package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want GameParams
	}{
		{"beginner", GameParams{Rows: 9, Cols: 9, MineCount: 10}},
		{"Intermediate", GameParams{Rows: 16, Cols: 16, MineCount: 40}},
		{"EXPERT", GameParams{Rows: 16, Cols: 30, MineCount: 99}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, err := PresetByName(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.want, p)
		})
	}

	_, err := PresetByName("nightmare")
	assert.Error(t, err)
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
		ok     bool
	}{
		{"beginner", Beginner, true},
		{"expert", Expert, true},
		{"densest allowed", GameParams{Rows: 3, Cols: 3, MineCount: 8}, true},
		{"no room for a safe cell", GameParams{Rows: 3, Cols: 3, MineCount: 9}, false},
		{"zero rows", GameParams{Rows: 0, Cols: 9, MineCount: 0}, false},
		{"negative cols", GameParams{Rows: 9, Cols: -1, MineCount: 0}, false},
		{"negative mines", GameParams{Rows: 9, Cols: 9, MineCount: -1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSeedRoundTrip(t *testing.T) {
	t.Parallel()

	for _, params := range []GameParams{Beginner, Intermediate, Expert} {
		parsed, err := ParseSeed(params.Seed())
		require.NoError(t, err)
		assert.Equal(t, params, *parsed)
	}

	_, err := ParseSeed("16:30")
	assert.Error(t, err)

	// parses but cannot host a game
	_, err = ParseSeed("3:3:9")
	assert.Error(t, err)
}

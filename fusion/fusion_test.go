package fusion

import (
	"math"
	"testing"

	"github.com/hupe1980/ragmark/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	a := model.Ranking{
		{DocID: "note_01", Score: 1.0},
		{DocID: "note_02", Score: 0.5},
	}
	b := model.Ranking{
		{DocID: "note_02", Score: 1.0},
		{DocID: "note_03", Score: 0.8},
	}

	fused, err := Linear(a, b, 0.5)
	require.NoError(t, err)

	require.Len(t, fused, 3)

	score := func(id string) float64 {
		s, ok := fused.Score(id)
		require.True(t, ok, "missing doc %q", id)
		return s
	}

	assert.InDelta(t, 0.75, score("note_02"), 1e-12)
	assert.InDelta(t, 0.50, score("note_01"), 1e-12)
	assert.InDelta(t, 0.40, score("note_03"), 1e-12)
	assert.Equal(t, "note_02", fused[0].DocID)
}

func TestLinear_AlphaBounds(t *testing.T) {
	a := model.Ranking{{DocID: "x", Score: 2.0}}
	b := model.Ranking{{DocID: "y", Score: 3.0}}

	t.Run("alpha one keeps only a scores", func(t *testing.T) {
		fused, err := Linear(a, b, 1.0)
		require.NoError(t, err)

		sx, _ := fused.Score("x")
		sy, _ := fused.Score("y")
		assert.InDelta(t, 2.0, sx, 1e-12)
		assert.InDelta(t, 0.0, sy, 1e-12)
	})

	t.Run("alpha zero keeps only b scores", func(t *testing.T) {
		fused, err := Linear(a, b, 0.0)
		require.NoError(t, err)

		sx, _ := fused.Score("x")
		sy, _ := fused.Score("y")
		assert.InDelta(t, 0.0, sx, 1e-12)
		assert.InDelta(t, 3.0, sy, 1e-12)
	})
}

func TestLinear_InvalidAlpha(t *testing.T) {
	a := model.Ranking{{DocID: "x", Score: 1.0}}
	b := model.Ranking{{DocID: "y", Score: 1.0}}

	for _, alpha := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := Linear(a, b, alpha)
		assert.ErrorIs(t, err, ErrInvalidAlpha, "alpha=%v", alpha)
	}
}

func TestLinear_Symmetry(t *testing.T) {
	a := model.Ranking{
		{DocID: "d1", Score: 0.9},
		{DocID: "d2", Score: 0.4},
	}
	b := model.Ranking{
		{DocID: "d2", Score: 0.7},
		{DocID: "d3", Score: 0.2},
	}

	ab, err := Linear(a, b, 0.3)
	require.NoError(t, err)
	ba, err := Linear(b, a, 0.7)
	require.NoError(t, err)

	for _, id := range []string{"d1", "d2", "d3"} {
		s1, ok1 := ab.Score(id)
		s2, ok2 := ba.Score(id)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.InDelta(t, s1, s2, 1e-12, "doc %q", id)
	}
}

func TestLinear_TiesKeepEncounterOrder(t *testing.T) {
	a := model.Ranking{{DocID: "first", Score: 1.0}}
	b := model.Ranking{{DocID: "second", Score: 1.0}}

	fused, err := Linear(a, b, 0.5)
	require.NoError(t, err)

	require.Len(t, fused, 2)
	assert.Equal(t, "first", fused[0].DocID)
	assert.Equal(t, "second", fused[1].DocID)
}

func TestLinear_Empty(t *testing.T) {
	fused, err := Linear(nil, nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, fused)
}

func TestRRF(t *testing.T) {
	a := model.Ranking{
		{DocID: "d1", Score: 12.0},
		{DocID: "d2", Score: 3.0},
	}
	b := model.Ranking{
		{DocID: "d2", Score: 0.9},
		{DocID: "d3", Score: 0.1},
	}

	fused := RRF(a, b, 60)
	require.Len(t, fused, 3)

	score := func(id string) float64 {
		s, ok := fused.Score(id)
		require.True(t, ok)
		return s
	}

	assert.InDelta(t, 1.0/61+1.0/61, score("d2"), 1e-12)
	assert.InDelta(t, 1.0/61, score("d1"), 1e-12)
	assert.InDelta(t, 1.0/62, score("d3"), 1e-12)
	assert.Equal(t, "d2", fused[0].DocID)
}

func TestRRF_DefaultK(t *testing.T) {
	a := model.Ranking{{DocID: "d1", Score: 1.0}}
	b := model.Ranking{{DocID: "d2", Score: 1.0}}

	withDefault := RRF(a, b, 0)
	explicit := RRF(a, b, DefaultK)

	require.Equal(t, len(explicit), len(withDefault))
	for i := range explicit {
		assert.Equal(t, explicit[i].DocID, withDefault[i].DocID)
		assert.InDelta(t, explicit[i].Score, withDefault[i].Score, 1e-12)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "linear", input: "linear", want: ModeLinear},
		{name: "rrf", input: "rrf", want: ModeRRF},
		{name: "mixed case", input: " Linear ", want: ModeLinear},
		{name: "unknown", input: "cosine", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "linear", ModeLinear.String())
	assert.Equal(t, "rrf", ModeRRF.String())
	assert.Equal(t, "unknown", Mode(99).String())
}

package keyframes_test

import (
	"testing"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/keyframes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyframeSerialization(t *testing.T) {
	k := keyframes.NewKeyframe("pulse")
	k.AddBlock(keyframes.NewBlock(0.5).Add("opacity", "0.5"))
	assert.Equal(t, "@keyframes pulse {\n  0.500000 { opacity: 0.5; }\n}\n", k.String())
}

func TestBlocksAreCopied(t *testing.T) {
	k := keyframes.NewKeyframe("k")
	k.AddBlock(keyframes.NewBlock(0)).AddBlock(nil)
	blocks := k.Blocks()
	require.Len(t, blocks, 1)
	blocks[0] = keyframes.NewBlock(1)
	assert.Equal(t, 1, k.Len())
	assert.Equal(t, 0.0, k.Blocks()[0].Offset)
}

func TestBlocksCannotChangeKeyframe(t *testing.T) {
	b := keyframes.NewBlock(0.5).Add("opacity", "0.5")
	k := keyframes.NewKeyframe("k").AddBlock(b)
	want := k.String()
	b.Offset = 0.1
	b.Add("color", "blue")
	view := k.Blocks()
	view[0].Offset = 0.9
	view[0].Add("color", "red")
	sorted := k.Sorted()
	sorted[0].Add("opacity", "1")
	assert.Equal(t, want, k.String())
	assert.Len(t, k.Blocks()[0].Declarations(), 1)
}

func TestSortedKeepsTies(t *testing.T) {
	k := keyframes.NewKeyframe("k")
	last := keyframes.NewBlock(1).Add("opacity", "1")
	tieA := keyframes.NewBlock(0.5).Add("opacity", "0.2")
	first := keyframes.NewBlock(0).Add("opacity", "0")
	tieB := keyframes.NewBlock(0.5).Add("opacity", "0.8")
	k.AddBlock(last).AddBlock(tieA).AddBlock(first).AddBlock(tieB)
	sorted := k.Sorted()
	assert.Equal(t, []*keyframes.Block{first, tieA, tieB, last}, sorted)
	assert.Equal(t, last, k.Blocks()[0], "append order is left untouched")
	//
	decls := tieB.RuleSet().Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, css.Num(0.8), decls[0].Value)
}

func TestParseOffset(t *testing.T) {
	cases := map[string]float64{"from": 0, "TO": 1, "25%": 0.25, "0.75": 0.75, " 100% ": 1}
	for in, want := range cases {
		x, err := keyframes.ParseOffset(in)
		if assert.NoError(t, err, in) {
			assert.InDelta(t, want, x, 1e-9, in)
		}
	}
	for _, in := range []string{"120%", "-0.1", "half"} {
		_, err := keyframes.ParseOffset(in)
		assert.Error(t, err, in)
	}
}

func TestRegistry(t *testing.T) {
	r := keyframes.NewRegistry()
	r.Add(keyframes.NewKeyframe("spin"))
	second := keyframes.NewKeyframe("spin")
	r.Add(second)
	r.Add(keyframes.NewKeyframe("fade"))
	k, ok := r.Lookup("spin")
	require.True(t, ok)
	assert.Same(t, second, k, "later definitions win")
	assert.Equal(t, []string{"fade", "spin"}, r.Names())
	_, ok = r.Lookup("none")
	assert.False(t, ok)
}

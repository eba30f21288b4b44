package shadow_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	ops   []shadow.Op
	paths []shadow.Path
}

func (r *recorder) Metrics() css.Metrics { return css.DefaultMetrics }

func (r *recorder) Paint(path shadow.Path, op shadow.Op) {
	r.paths = append(r.paths, path)
	r.ops = append(r.ops, op)
}

func px(x float64) css.Dimension { return css.Dimen(x, css.Pixels) }

func TestGroupOutsetInset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.shadow")
	defer teardown()
	//
	red := css.Color{R: 255, A: 255}
	s1 := &shadow.Shadow{H: px(1), V: px(2), Blur: px(3), Color: &red}
	s2 := &shadow.Shadow{Inset: true, H: px(4), V: px(5)}
	s3 := &shadow.Shadow{H: px(6), V: css.Dimen(1, css.EMs)}
	g := shadow.NewGroup(s1, s2, shadow.NewGroup(s3))
	//
	out := &recorder{}
	g.ApplyOutset("path", out)
	require.Len(t, out.ops, 2)
	assert.Equal(t, 1.0, out.ops[0].DX)
	assert.Equal(t, red, out.ops[0].Color)
	assert.Equal(t, 16.0, out.ops[1].DY)
	assert.Equal(t, shadow.Outset, out.ops[1].Kind)
	assert.Equal(t, "path", out.paths[0])
	//
	in := &recorder{}
	g.ApplyInset("path", in)
	require.Len(t, in.ops, 1)
	assert.Equal(t, shadow.Inset, in.ops[0].Kind)
	assert.Equal(t, 4.0, in.ops[0].DX)
	assert.Equal(t, shadow.DefaultTint, in.ops[0].Color)
}

func TestShadowString(t *testing.T) {
	c := css.Color{R: 1, G: 2, B: 3, A: 255}
	s := &shadow.Shadow{Inset: true, H: px(2), V: px(-2), Blur: px(4), Color: &c}
	assert.Equal(t, "inset 2px -2px 4px 0 rgb(1,2,3)", s.String())
	g := shadow.NewGroup(s, &shadow.Shadow{H: px(1), V: px(1)})
	assert.Equal(t, "inset 2px -2px 4px 0 rgb(1,2,3), 1px 1px 0 0 rgb(0,0,0)", g.String())
	assert.Equal(t, "none", (&shadow.Group{}).String())
}

func TestGroupMembersCopy(t *testing.T) {
	g := shadow.NewGroup(&shadow.Shadow{}, nil)
	assert.Equal(t, 1, g.Len())
	m := g.Members()
	m[0] = nil
	assert.NotNil(t, g.Members()[0])
}

func TestResolveDefaults(t *testing.T) {
	own := css.Color{G: 255, A: 255}
	tint := css.Color{B: 255, A: 255}
	mult := shadow.BlendMultiply
	s1 := &shadow.Shadow{H: px(1)}
	s2 := &shadow.Shadow{H: px(1), Color: &own}
	g := shadow.NewGroup(s1, s2)
	r := shadow.Resolve(g, shadow.Defaults{Tint: &tint, Blend: &mult})
	members := r.(*shadow.Group).Members()
	assert.Equal(t, tint, members[0].(*shadow.Shadow).Tint())
	assert.Equal(t, own, members[1].(*shadow.Shadow).Tint())
	assert.Nil(t, s1.Color, "original shadow must stay untouched")
	//
	rec := &recorder{}
	r.ApplyOutset(nil, rec)
	require.Len(t, rec.ops, 2)
	assert.Equal(t, shadow.BlendMultiply, rec.ops[0].Blend)
}

func TestBlendModes(t *testing.T) {
	b, ok := shadow.ParseBlendMode("soft-light")
	assert.True(t, ok)
	assert.Equal(t, "soft-light", b.String())
	_, ok = shadow.ParseBlendMode("plus")
	assert.False(t, ok)
	assert.Contains(t, shadow.BlendModeNames(), "multiply")
}

func TestDump(t *testing.T) {
	g := shadow.NewGroup(&shadow.Shadow{H: px(1)}, shadow.NewGroup(&shadow.Shadow{Inset: true}))
	out := shadow.Dump(g)
	t.Logf("\n%s", out)
	assert.True(t, strings.Contains(out, "group (2)"))
	assert.True(t, strings.Contains(out, "inset 0 0 0 0"))
}

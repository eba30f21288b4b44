package restyle_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/npillmayer/restyle"
	"github.com/npillmayer/restyle/config"
	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/font"
	"github.com/npillmayer/restyle/host"
	"github.com/npillmayer/restyle/resource"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/styler"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type typeface string

func (tf typeface) Name() string { return string(tf) }

type provider struct{}

func (provider) CreateTypeface(family string, flag font.StyleFlag) (font.Typeface, error) {
	return typeface(family + "-" + flag.String()), nil
}

func (provider) CreateTypefaceFromBytes(data []byte) (font.Typeface, error) {
	return typeface("from-bytes"), nil
}

const sheet = `
div.app { color: green; font-family: Fira; font-weight: bold; }
button.primary { color: red; box-shadow: 1px 1px; padding: 2px; }
#ok { opacity: 0.5 !important; }
button > icon { color: blue; transform: rotate(90deg); }
@keyframes blink { from { opacity: 0; } to { opacity: 1; } }
.blinking { animation-name: blink; animation-duration: 1s; }
@font-face { font-family: Fira; src: url(bundle://fonts/fira-bold.ttf); font-weight: bold; }
`

func engine(t *testing.T) *restyle.Engine {
	locator := &resource.Resolver{Bundle: fstest.MapFS{
		"fonts/fira-bold.ttf": {Data: []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x0c, 0x00, 0x80}},
	}}
	e := restyle.New(nil, provider{}, locator)
	require.NoError(t, e.AddStyleSheet(sheet))
	return e
}

func tree() (root, btn *host.View, icon *host.Part) {
	root = host.NewView("div.app")
	btn = host.NewView("button#ok.primary.blinking")
	root.Add(btn)
	icon = btn.AddPart("icon")
	return
}

func TestStyleTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.engine")
	defer teardown()
	//
	e := engine(t)
	defer e.Close()
	root, btn, icon := tree()
	btn.HTMLNode().Attr = append(btn.HTMLNode().Attr, html.Attribute{Key: "style", Val: "opacity: 0.2; background-color: yellow"})
	//
	rootCtx, err := e.Style(style.Host(root), nil)
	require.NoError(t, err)
	for _, target := range btn.Targets() {
		_, err := e.Style(target, rootCtx)
		require.NoError(t, err, target.String())
	}
	assert.Equal(t, css.Color{G: 128, A: 255}, root.Color)
	assert.Equal(t, "from-bytes", root.Face.Typeface.Name(), "@font-face source is used")
	assert.Equal(t, css.Color{R: 255, A: 255}, btn.Color)
	assert.Equal(t, "from-bytes", btn.Face.Typeface.Name(), "font is inherited")
	assert.Equal(t, 0.5, btn.Opacity, "important beats inline")
	assert.Equal(t, css.Color{R: 255, G: 255, A: 255}, btn.Background, "inline styles apply")
	require.NotNil(t, btn.Shadow)
	assert.Equal(t, css.Color{A: 128}, btn.Shadow.(*shadow.Shadow).Tint(), "configured shadow color")
	require.NotNil(t, btn.Animation)
	assert.Equal(t, "blink", btn.Animation.Keyframes.Name())
	//
	assert.Equal(t, css.Color{B: 255, A: 255}, icon.Color)
	x, y := icon.Transform.Apply(1, 0)
	assert.InDelta(t, 0.0, x, 1e-9)
	assert.InDelta(t, 1.0, y, 1e-9)
	assert.Equal(t, 1.0, icon.Opacity, "parts do not take the host's inline style")
}

func TestStyleAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.engine")
	defer teardown()
	//
	e := engine(t)
	defer e.Close()
	_, btn, icon := tree()
	err := e.StyleAll(btn.Targets())
	require.NoError(t, err)
	assert.Equal(t, css.Color{R: 255, A: 255}, btn.Color)
	assert.Equal(t, css.Color{B: 255, A: 255}, icon.Color)
	assert.Nil(t, btn.Face.Typeface, "nothing is inherited in batches")
}

func TestRegisteredAdapter(t *testing.T) {
	e := engine(t)
	defer e.Close()
	e.Register(host.Family, styler.NewAdapter("colors only", styler.ColorStyler{}))
	_, btn, _ := tree()
	_, err := e.Style(style.Host(btn), nil)
	require.NoError(t, err)
	assert.Equal(t, css.Color{R: 255, A: 255}, btn.Color)
	assert.Equal(t, 1.0, btn.Opacity)
	assert.Equal(t, "colors only", e.Adapter(host.Family).Name())
	assert.Equal(t, "default", e.Adapter("other").Name())
}

func TestStylerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.engine")
	defer teardown()
	//
	e := engine(t)
	defer e.Close()
	require.NoError(t, e.AddStyleSheet(`p { animation-name: nowhere; color: teal; }`))
	p := host.NewView("p")
	ctx, err := e.Style(style.Host(p), nil)
	var ae *styler.ApplyError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "animation", ae.Styler)
	assert.NotNil(t, ctx)
	assert.Equal(t, css.Color{G: 128, B: 128, A: 255}, p.Color)
}

func TestAddHTML(t *testing.T) {
	e := restyle.New(nil, nil, nil)
	defer e.Close()
	doc, err := html.Parse(strings.NewReader(`<html><head><style>span { color: orange; }</style></head><body></body></html>`))
	require.NoError(t, err)
	require.NoError(t, e.AddHTML(doc))
	span := host.NewView("span")
	_, err = e.Style(style.Host(span), nil)
	require.NoError(t, err)
	assert.Equal(t, css.Color{R: 255, G: 165, A: 255}, span.Color)
}

func TestClose(t *testing.T) {
	cfg, err := config.Parse([]byte("fonts:\n  family: Serif\n"), nil)
	require.NoError(t, err)
	e := restyle.New(cfg, provider{}, nil)
	assert.Equal(t, "Serif", e.Config().Fonts.Family)
	_, err = e.Fonts().Typeface("Serif", "normal", "normal")
	require.NoError(t, err)
	require.NoError(t, e.Close())
	assert.Equal(t, 0, e.Fonts().Len())
	assert.ErrorIs(t, e.Close(), restyle.ErrClosed)
	_, err = e.Style(style.Host(host.NewView("div")), nil)
	assert.ErrorIs(t, err, restyle.ErrClosed)
	assert.ErrorIs(t, e.AddStyleSheet("p { color: red; }"), restyle.ErrClosed)
	assert.ErrorIs(t, e.StyleAll(nil), restyle.ErrClosed)
}

/*
Package font caches typefaces for the style engine.

Typefaces are created by a Provider, which is supplied by the host
environment. The engine never loads OS fonts itself. A Cache remembers
typefaces by family, weight and style, and by the URL they have been loaded
from. Failures are returned to the caller and are never cached, so a later
request will try again.

A Cache is owned by its creator (usually the style engine) and is safe for
concurrent use. Typeface creation runs outside of the cache's lock; if two
clients race for the same key, the last one to finish wins.

# Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	"github.com/npillmayer/restyle/resource"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.font'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.font")
}

// ErrTypefaceLoad is wrapped by all errors of typeface creation.
var ErrTypefaceLoad = errors.New("cannot load typeface")

// StyleFlag selects a variant of a font family.
type StyleFlag uint8

// Font variants.
const (
	Normal StyleFlag = iota
	Bold
	Italic
	BoldItalic
)

func (f StyleFlag) String() string {
	switch f {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	}
	return "normal"
}

// FlagFor derives the variant for a CSS font weight and font style.
// Bold is "bold", "bolder" or a numeric weight of at least 600; italic is
// "italic" or "oblique".
func FlagFor(weight, style string) StyleFlag {
	var f StyleFlag
	switch w := strings.ToLower(strings.TrimSpace(weight)); w {
	case "bold", "bolder":
		f = Bold
	default:
		if n, err := strconv.Atoi(w); err == nil && n >= 600 {
			f = Bold
		}
	}
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "italic", "oblique":
		f |= Italic
	}
	return f
}

// Typeface is a font as created by a Provider. The engine treats it as
// opaque.
type Typeface interface {
	Name() string
}

// Face is a typeface at a size, as handed to font targets.
type Face struct {
	Typeface Typeface
	Size     float64 // in pixels
}

func (f Face) String() string {
	name := "<none>"
	if f.Typeface != nil {
		name = f.Typeface.Name()
	}
	return fmt.Sprintf("%s@%gpx", name, f.Size)
}

// Provider creates typefaces. It is implemented by the host environment.
type Provider interface {
	CreateTypeface(family string, flag StyleFlag) (Typeface, error)
	CreateTypefaceFromBytes(data []byte) (Typeface, error)
}

// Cache is a typeface cache.
type Cache struct {
	provider Provider
	locator  resource.Locator
	mx       sync.Mutex
	byKey    map[string]Typeface // family:weight:style
	byURL    map[string]Typeface
	sources  map[string]string // family:flag → URL, from @font-face
}

// NewCache creates a typeface cache. locator may be nil, in which case
// typefaces cannot be loaded from URLs.
func NewCache(provider Provider, locator resource.Locator) *Cache {
	c := &Cache{provider: provider, locator: locator}
	c.Clear()
	return c
}

// Clear empties the cache, including registered sources.
func (c *Cache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.byKey = make(map[string]Typeface)
	c.byURL = make(map[string]Typeface)
	c.sources = make(map[string]string)
}

// Len returns the number of cached typefaces.
func (c *Cache) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return len(c.byKey) + len(c.byURL)
}

func key(family, weight, style string) string {
	return strings.ToLower(family) + ":" + strings.ToLower(weight) + ":" + strings.ToLower(style)
}

// variantOf maps a cache key family:weight:style to its source key.
func variantOf(k string) string {
	i := strings.LastIndexByte(k, ':')
	j := strings.LastIndexByte(k[:i], ':')
	return sourceKey(k[:j], FlagFor(k[j+1:i], k[i+1:]))
}

func sourceKey(family string, flag StyleFlag) string {
	return strings.ToLower(family) + ":" + flag.String()
}

// Register binds a font source URL to a family variant, as done by
// @font-face rules. Later registrations replace earlier ones. Typefaces
// already cached for the variant are dropped, so the next lookup loads the
// registered source.
func (c *Cache) Register(family, weight, style, url string) {
	flag := FlagFor(weight, style)
	sk := sourceKey(family, flag)
	c.mx.Lock()
	defer c.mx.Unlock()
	c.sources[sk] = url
	for k := range c.byKey {
		if variantOf(k) == sk {
			delete(c.byKey, k)
		}
	}
	tracer().Debugf("font: registered %s %s → %s", family, flag, url)
}

// Typeface returns the typeface for a family variant. Variants with a
// registered source are loaded from its URL, all others are created by the
// provider.
func (c *Cache) Typeface(family, weight, style string) (Typeface, error) {
	k := key(family, weight, style)
	flag := FlagFor(weight, style)
	c.mx.Lock()
	tf, ok := c.byKey[k]
	url, registered := c.sources[sourceKey(family, flag)]
	c.mx.Unlock()
	if ok {
		return tf, nil
	}
	var err error
	if registered {
		tf, err = c.TypefaceFromURL(url)
	} else if c.provider == nil {
		err = fmt.Errorf("%w: %s: no font provider", ErrTypefaceLoad, family)
	} else {
		tf, err = c.provider.CreateTypeface(family, flag)
		if err == nil && tf == nil {
			err = errors.New("provider returned no typeface")
		}
		if err != nil {
			err = fmt.Errorf("%w: %s %s: %w", ErrTypefaceLoad, family, flag, err)
		}
	}
	if err != nil {
		tracer().Debugf("font: %v", err)
		return nil, err
	}
	c.mx.Lock()
	c.byKey[k] = tf
	c.mx.Unlock()
	return tf, nil
}

// TypefaceFromURL returns the typeface loaded from url. Content which does
// not look like a font is rejected before it reaches the provider.
func (c *Cache) TypefaceFromURL(url string) (Typeface, error) {
	c.mx.Lock()
	tf, ok := c.byURL[url]
	c.mx.Unlock()
	if ok {
		return tf, nil
	}
	if c.locator == nil {
		return nil, fmt.Errorf("%w: %s: no resource locator", ErrTypefaceLoad, url)
	}
	if c.provider == nil {
		return nil, fmt.Errorf("%w: %s: no font provider", ErrTypefaceLoad, url)
	}
	data, err := c.locator.Open(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTypefaceLoad, err)
	}
	if !filetype.IsFont(data) {
		return nil, fmt.Errorf("%w: %s: not a font file", ErrTypefaceLoad, url)
	}
	tf, err = c.provider.CreateTypefaceFromBytes(data)
	if err == nil && tf == nil {
		err = errors.New("provider returned no typeface")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTypefaceLoad, url, err)
	}
	c.mx.Lock()
	c.byURL[url] = tf
	c.mx.Unlock()
	tracer().Debugf("font: loaded %s from %s", tf.Name(), url)
	return tf, nil
}

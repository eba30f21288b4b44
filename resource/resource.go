/*
Package resource resolves resource locators to their content.

Locators name resources independently of where they live:

	bundle://fonts/Fira.otf       application assets
	documents://styles/app.css    the user's documents folder
	tmp://cache/x.woff2           the temporary folder
	data:font/ttf;base64,AAEAAA…  inline content
	/usr/share/fonts/a.ttf        absolute file path

Bare names, like "fonts/Fira.otf", are looked up in the documents folder
first, then in the bundle.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package resource

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.resource'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.resource")
}

// ErrNotFound is returned for locators which do not resolve to a resource.
var ErrNotFound = errors.New("resource not found")

// Locator opens resources by locator.
type Locator interface {
	Open(locator string) ([]byte, error)
}

// Resolver is the default Locator. Zero-valued fields disable the
// corresponding scheme.
type Resolver struct {
	Bundle    fs.FS  // application assets
	Documents string // documents folder
	Temp      string // temporary folder
}

var _ Locator = &Resolver{}

const (
	schemeBundle    = "bundle://"
	schemeDocuments = "documents://"
	schemeTemp      = "tmp://"
	schemeData      = "data:"
)

// Open returns the content of the resource named by locator. Errors for
// resources which cannot be found wrap ErrNotFound.
func (r *Resolver) Open(locator string) ([]byte, error) {
	tracer().Debugf("resource: open %q", locator)
	switch {
	case strings.HasPrefix(locator, schemeData):
		return decodeDataURL(locator)
	case strings.HasPrefix(locator, schemeBundle):
		return r.openBundle(strings.TrimPrefix(locator, schemeBundle))
	case strings.HasPrefix(locator, schemeDocuments):
		return openIn(r.Documents, strings.TrimPrefix(locator, schemeDocuments))
	case strings.HasPrefix(locator, schemeTemp):
		return openIn(r.Temp, strings.TrimPrefix(locator, schemeTemp))
	case filepath.IsAbs(locator):
		return readFile(locator)
	}
	data, err := openIn(r.Documents, locator)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return r.openBundle(locator)
}

func (r *Resolver) openBundle(name string) ([]byte, error) {
	if r.Bundle == nil {
		return nil, fmt.Errorf("%w: %s (no bundle)", ErrNotFound, name)
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid bundle path %s", ErrNotFound, name)
	}
	data, err := fs.ReadFile(r.Bundle, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: bundle://%s", ErrNotFound, name)
	}
	return data, err
}

func openIn(dir, name string) ([]byte, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: %s (no folder configured)", ErrNotFound, name)
	}
	name = filepath.Clean(filepath.FromSlash("/" + name))
	return readFile(filepath.Join(dir, name))
}

func readFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, err
}

// decodeDataURL decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURL(locator string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(locator, schemeData), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL: missing ','")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(payload)
		}
		if err != nil {
			return nil, fmt.Errorf("malformed data URL: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URL: %w", err)
	}
	return []byte(s), nil
}

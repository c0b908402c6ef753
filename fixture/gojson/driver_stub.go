//go:build !gojson

package gojson

import (
	"io"

	"github.com/cadl-tools/emitcore/fixture"
)

// Driver returns a stub that delegates to the stdlib-backed source when the
// binary was not built with -tags gojson, so callers can always import this
// package unconditionally and get a working driver either way.
func Driver() fixture.Driver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) fixture.TokenSource { return fixture.NewJSONBytesReader(r) }
func (stub) Name() string                              { return "encoding/json (gojson stub)" }

// Package fixturewire registers fixture/gojson's driver as the JSON decode
// backend for package fixture: the goccy/go-json backed one when built with
// the gojson tag, and otherwise a stub that delegates to the stdlib-backed
// decoder. It lives apart from
// fixture itself so that fixture does not have to import fixture/gojson
// (which would be a cycle once gojson imports fixture's types).
package fixturewire

import (
	"github.com/cadl-tools/emitcore/fixture"
	drvgojson "github.com/cadl-tools/emitcore/fixture/gojson"
)

func init() { fixture.SetDriver(drvgojson.Driver()) }

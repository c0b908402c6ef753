//go:build gojson

package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/cadl-tools/emitcore/fixture"
)

// Driver returns a fixture.Driver backed by goccy/go-json, selected when the
// binary is built with -tags gojson.
func Driver() fixture.Driver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) fixture.TokenSource { return newSource(r) }
func (driverGoJSON) Name() string                              { return "goccy/go-json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

func newSource(r io.Reader) *source {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into a fixture.TokenSource using go-json.
func NewBytes(b []byte) fixture.TokenSource { return newSource(bytes.NewReader(b)) }

func (s *source) NextToken() (fixture.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return fixture.Token{}, io.EOF
		}
		return fixture.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return fixture.Token{Kind: fixture.KindBeginObject}, nil
		case '}':
			s.popClosed()
			return fixture.Token{Kind: fixture.KindEndObject}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return fixture.Token{Kind: fixture.KindBeginArray}, nil
		case ']':
			s.popClosed()
			return fixture.Token{Kind: fixture.KindEndArray}, nil
		}
	case string:
		if s.atObjectKeyPosition() {
			s.markKeyConsumed()
			return fixture.Token{Kind: fixture.KindKey, String: v}, nil
		}
		s.markValueConsumed()
		return fixture.Token{Kind: fixture.KindString, String: v}, nil
	case bool:
		s.markValueConsumed()
		return fixture.Token{Kind: fixture.KindBool, Bool: v}, nil
	case j.Number:
		s.markValueConsumed()
		return fixture.Token{Kind: fixture.KindNumber, Number: string(v)}, nil
	case float64:
		s.markValueConsumed()
		return fixture.Token{Kind: fixture.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case nil:
		s.markValueConsumed()
		return fixture.Token{Kind: fixture.KindNull}, nil
	}
	s.markValueConsumed()
	return fixture.Token{Kind: fixture.KindNull}, nil
}

func (s *source) Location() int64 { return -1 }

func (s *source) popClosed() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.markValueConsumed()
}

func (s *source) atObjectKeyPosition() bool {
	n := len(s.stack)
	return n > 0 && s.stack[n-1].kind == kindObject && s.stack[n-1].expectingKey
}

func (s *source) markKeyConsumed() {
	if n := len(s.stack); n > 0 {
		s.stack[n-1].expectingKey = false
	}
}

func (s *source) markValueConsumed() {
	if n := len(s.stack); n > 0 && s.stack[n-1].kind == kindObject {
		s.stack[n-1].expectingKey = true
	}
}

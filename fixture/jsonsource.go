package fixture

import (
	"bytes"
	"encoding/json"
	"io"
)

// Driver selects the JSON decode backend used by Load/LoadBytes. The
// default is the stdlib-backed driver below; importing fixture/gojson's
// companion package swaps in fixture/gojson's driver, which is backed by
// goccy/go-json only when built with the gojson tag.
type Driver interface {
	NewReader(r io.Reader) TokenSource
	Name() string
}

var activeDriver Driver = stdlibDriver{}

// SetDriver replaces the active JSON decode backend. Call during program
// init, before any fixture has been loaded.
func SetDriver(d Driver) { activeDriver = d }

// ActiveDriverName reports which backend Load currently uses.
func ActiveDriverName() string { return activeDriver.Name() }

type stdlibDriver struct{}

func (stdlibDriver) NewReader(r io.Reader) TokenSource { return newJSONSource(r) }
func (stdlibDriver) Name() string                      { return "encoding/json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []dupFrame
	lastOffset int64
}

func newJSONSource(r io.Reader) *jsonSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewJSONBytes wraps a byte slice into a TokenSource using the stdlib
// decoder directly, bypassing the active driver.
func NewJSONBytes(b []byte) TokenSource { return newJSONSource(bytes.NewReader(b)) }

// NewJSONBytesReader wraps an io.Reader into a TokenSource using the stdlib
// decoder directly, bypassing the active driver. Used by the gojson stub so
// that it has a real fallback without importing the gojson package itself.
func NewJSONBytesReader(r io.Reader) TokenSource { return newJSONSource(r) }

func (s *jsonSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, dupFrame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: s.lastOffset}, nil
		case '}':
			s.popClosed()
			return Token{Kind: KindEndObject, Offset: s.lastOffset}, nil
		case '[':
			s.stack = append(s.stack, dupFrame{kind: kindArray})
			return Token{Kind: KindBeginArray, Offset: s.lastOffset}, nil
		case ']':
			s.popClosed()
			return Token{Kind: KindEndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if s.atObjectKeyPosition() {
			s.markKeyConsumed()
			return Token{Kind: KindKey, String: v, Offset: s.lastOffset}, nil
		}
		s.markValueConsumed()
		return Token{Kind: KindString, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.markValueConsumed()
		return Token{Kind: KindBool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.markValueConsumed()
		return Token{Kind: KindNumber, Number: string(v), Offset: s.lastOffset}, nil
	case nil:
		s.markValueConsumed()
		return Token{Kind: KindNull, Offset: s.lastOffset}, nil
	}
	s.markValueConsumed()
	return Token{Kind: KindNull, Offset: s.lastOffset}, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }

func (s *jsonSource) popClosed() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.markValueConsumed()
}

func (s *jsonSource) atObjectKeyPosition() bool {
	n := len(s.stack)
	return n > 0 && s.stack[n-1].kind == kindObject && s.stack[n-1].expectingKey
}

func (s *jsonSource) markKeyConsumed() {
	if n := len(s.stack); n > 0 {
		s.stack[n-1].expectingKey = false
	}
}

func (s *jsonSource) markValueConsumed() {
	if n := len(s.stack); n > 0 && s.stack[n-1].kind == kindObject {
		s.stack[n-1].expectingKey = true
	}
}

// Load decodes r into a generic fixture value tree using the active driver.
func Load(r io.Reader) (any, error) {
	return DecodeAny(activeDriver.NewReader(r))
}

// LoadBytes is Load over an in-memory buffer.
func LoadBytes(b []byte) (any, error) { return Load(bytes.NewReader(b)) }

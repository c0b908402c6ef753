package emitcore

import "strconv"

// Tag names one of possibly several AssetEmitters sharing a Program — e.g.
// one Program emitted to two target languages from two AssetEmitters, each
// tagged so a user emitter's operations can tell which pass is running.
type Tag = string

// TagFactory mints Tags for an EmitterContext. It exists mainly so a caller
// building several related AssetEmitters (e.g. one per output target) can
// derive their tags from one place rather than hand-writing string
// constants that might collide.
type TagFactory struct {
	seen map[string]int
}

// NewTagFactory returns an empty TagFactory.
func NewTagFactory() *TagFactory {
	return &TagFactory{seen: make(map[string]int)}
}

// New returns a Tag derived from name: the first call for a given name
// returns name unchanged, and later calls append a disambiguating suffix,
// so accidental reuse of a tag name does not silently alias two targets.
func (f *TagFactory) New(name string) Tag {
	n := f.seen[name]
	f.seen[name] = n + 1
	if n == 0 {
		return name
	}
	return name + "#" + strconv.Itoa(n)
}

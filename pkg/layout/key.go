package layout

import (
	"cmp"
	"slices"
	"strconv"
)

type keyKind uint8

const (
	noKey keyKind = iota
	numberKey
	stringKey
)

// Key orders items inside a container. It holds a number, a string, or
// nothing; the zero value is "no key".
type Key struct {
	kind keyKind
	num  float64
	str  string
}

// NumberKey returns a numeric key.
func NumberKey(v float64) Key { return Key{kind: numberKey, num: v} }

// StringKey returns a string key.
func StringKey(s string) Key { return Key{kind: stringKey, str: s} }

// IsZero reports whether k holds no value.
func (k Key) IsZero() bool { return k.kind == noKey }

// Number returns the numeric value and whether k is numeric.
func (k Key) Number() (float64, bool) { return k.num, k.kind == numberKey }

// Text returns the string value and whether k is a string key.
func (k Key) Text() (string, bool) { return k.str, k.kind == stringKey }

// String formats the key for logs and exports.
func (k Key) String() string {
	switch k.kind {
	case numberKey:
		return strconv.FormatFloat(k.num, 'g', -1, 64)
	case stringKey:
		return k.str
	}
	return ""
}

// compareAs orders a and b as keys of the given kind. Keys of that kind come
// first; the rest compare equal so a stable sort keeps their order.
func compareAs(a, b Key, kind keyKind) int {
	am, bm := a.kind == kind, b.kind == kind
	switch {
	case am && bm:
		if kind == numberKey {
			return cmp.Compare(a.num, b.num)
		}
		return cmp.Compare(a.str, b.str)
	case am:
		return -1
	case bm:
		return 1
	}
	return 0
}

// SortMembers stably sorts items by key. The first item decides whether keys
// compare as numbers or strings; when it has no key the order is left alone.
func SortMembers(items []*Item) {
	if len(items) == 0 {
		return
	}
	kind := items[0].Key.kind
	if kind == noKey {
		return
	}
	slices.SortStableFunc(items, func(a, b *Item) int {
		return compareAs(a.Key, b.Key, kind)
	})
}

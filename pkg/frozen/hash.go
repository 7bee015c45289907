package frozen

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hash domain tags keep values of different shapes apart.
const (
	tagMix byte = iota
	tagNil
	tagString
	tagBool
	tagInt
	tagUint
	tagTuple
	tagSet
	tagMap
)

// opaqueSeed hashes comparable opaque values. Those hashes are stable for the
// lifetime of the process only.
var opaqueSeed = maphash.MakeSeed()

// Hash returns a hash of v consistent with Equal: equal values hash equally.
//
// Scalars and frozen values built from scalars hash deterministically across
// processes. Other comparable values (pointers, structs, floats) are hashed
// by identity/value with a per-process seed. Values that are not equal to
// themselves (NaN) or that Go cannot compare return an *UnhashableError.
func Hash(v any) (uint64, error) {
	switch x := v.(type) {
	case nil:
		return hashWords(tagNil), nil
	case Value:
		return x.Hash()
	case string:
		return hashString(x), nil
	case int:
		return hashWords(tagInt, uint64(x)), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return hashString(rv.String()), nil
	case reflect.Bool:
		if rv.Bool() {
			return hashWords(tagBool, 1), nil
		}
		return hashWords(tagBool, 0), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return hashWords(tagInt, uint64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return hashWords(tagUint, rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		// NaN is not equal to itself, so it can never be found again.
		if math.IsNaN(rv.Float()) {
			return 0, &UnhashableError{Value: v}
		}
	case reflect.Complex64, reflect.Complex128:
		if c := rv.Complex(); math.IsNaN(real(c)) || math.IsNaN(imag(c)) {
			return 0, &UnhashableError{Value: v}
		}
	}

	if !rv.Comparable() {
		return 0, &UnhashableError{Value: v}
	}
	return maphash.Comparable(opaqueSeed, v), nil
}

func hashString(s string) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{tagString})
	_, _ = d.WriteString(s)
	return d.Sum64()
}

func hashWords(tag byte, words ...uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	buf[0] = tag
	_, _ = d.Write(buf[:1])
	for _, w := range words {
		binary.LittleEndian.PutUint64(buf[:], w)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// mix scrambles member hashes before they are summed, so that the
// commutative combination used by Set and Map does not cancel out.
func mix(words ...uint64) uint64 {
	return hashWords(tagMix, words...)
}

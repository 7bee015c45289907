package frozen

import "reflect"

// Kind is the runtime shape of a value as seen by Freeze.
type Kind int

const (
	// KindOpaque values are passed through unchanged.
	KindOpaque Kind = iota
	// KindScalar values (strings, booleans, integers) are already immutable.
	KindScalar
	// KindMapping values are Go maps; they freeze into *Map.
	KindMapping
	// KindSet values are maps with empty-struct values, or Members; they freeze into *Set.
	KindSet
	// KindSequence values are slices and arrays; they freeze into *Tuple.
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSet:
		return "set"
	case KindSequence:
		return "sequence"
	default:
		return "opaque"
	}
}

// Members is a set literal. It holds elements that Go cannot use as map keys
// (maps, slices), which a map[K]struct{} cannot express.
// Duplicates collapse once the elements are frozen.
type Members []any

// Classify reports the shape of v.
// Values that are already frozen are KindOpaque.
func Classify(v any) Kind {
	switch v.(type) {
	case nil, Value:
		return KindOpaque
	case string, int, bool:
		return KindScalar
	case Members:
		return KindSet
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindScalar
	case reflect.Map:
		if isEmptyStruct(rv.Type().Elem()) {
			return KindSet
		}
		return KindMapping
	case reflect.Slice, reflect.Array:
		return KindSequence
	}
	return KindOpaque
}

func isEmptyStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

package contentmodel

import (
	"reflect"
	"strconv"
	"strings"
)

// descend walks rest through v as plain data. It stops at the first missing
// segment and returns nil.
func descend(v any, rest string) any {
	for rest != "" {
		// Nested instances resolve the remainder with their own fallbacks.
		if inst, ok := v.(*Instance); ok {
			if inst == nil {
				return nil
			}
			return inst.Get(rest)
		}
		var seg string
		seg, rest, _ = strings.Cut(rest, ".")
		v = field(v, seg)
		if v == nil {
			return nil
		}
	}
	return v
}

// field returns the member seg of v: a map entry, an exported struct field
// or a slice/array element.
func field(v any, seg string) any {
	switch m := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return m[seg]
	case []any:
		if idx, ok := index(seg, len(m)); ok {
			return m[idx]
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		key := reflect.ValueOf(seg).Convert(rv.Type().Key())
		return valueOf(rv.MapIndex(key))
	case reflect.Struct:
		sf, ok := rv.Type().FieldByName(seg)
		if !ok || !sf.IsExported() {
			return nil
		}
		f, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return nil
		}
		return valueOf(f)
	case reflect.Slice, reflect.Array:
		if idx, ok := index(seg, rv.Len()); ok {
			return valueOf(rv.Index(idx))
		}
	}
	return nil
}

func index(seg string, n int) (int, bool) {
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

func valueOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

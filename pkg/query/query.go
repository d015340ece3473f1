package query

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Rule decides whether a parameter value is sent.
type Rule int

const (
	// OmitEmpty keeps every value except nil, unset pointers and "".
	OmitEmpty Rule = iota

	// OmitFalsy keeps only truthy values: nil, "", 0, NaN and false are dropped.
	OmitFalsy
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case OmitEmpty:
		return "omit-empty"
	case OmitFalsy:
		return "omit-falsy"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// Keep reports whether v survives the rule.
func (r Rule) Keep(v any) bool {
	v, ok := deref(v)
	if !ok {
		return false
	}
	if r == OmitFalsy {
		return truthy(v)
	}
	s, isString := v.(string)
	return !isString || s != ""
}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query parameters.
// Duplicate keys are allowed and are encoded in order.
type Params []Param

// Source is anything that can describe itself as query parameters.
// Typed filter structs implement it; so does Params.
type Source interface {
	Params() Params
}

// Params returns p unchanged, so a literal list can be passed wherever a
// Source is expected.
func (p Params) Params() Params { return p }

// Add appends a parameter and returns the extended list.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode filters params with rule and returns "k=v&k=v" in insertion order.
// The result is empty when nothing survives; it never starts with "?".
func Encode(params Params, rule Rule) string {
	var b strings.Builder
	for _, p := range params {
		if !rule.Keep(p.Value) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(Stringify(p.Value)))
	}
	return b.String()
}

// EncodeSource is Encode for a possibly nil Source.
func EncodeSource(src Source, rule Rule) string {
	if src == nil || isNilPointer(src) {
		return ""
	}
	return Encode(src.Params(), rule)
}

// Join attaches a query string to base, adding "?" only when q is non-empty.
func Join(base, q string) string {
	if q == "" {
		return base
	}
	return base + "?" + q
}

// Stringify renders v in its literal form: 2, 3.5, true, food.
// Pointers are dereferenced; nil renders as "".
func Stringify(v any) string {
	v, ok := deref(v)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// deref follows pointers and reports false for nil values.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

func truthy(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ArrayEncoding selects how multi-valued parameters appear in a query string.
type ArrayEncoding int

const (
	// RepeatKeys renders ["a","b"] as k=a&k=b, the same form url.Values uses.
	RepeatKeys ArrayEncoding = iota
	// CommaJoin renders ["a","b"] as k=a%2Cb.
	CommaJoin
)

func (a ArrayEncoding) String() string {
	if a == CommaJoin {
		return "comma"
	}
	return "repeat"
}

// Serializer renders a parameter bag into the exact bytes placed on the wire
// and signed. Keys are emitted in schema declaration order, then undeclared
// keys in insertion order. Nil values are omitted.
type Serializer struct {
	Schema Schema
	// Arrays applies to list values whose Param does not pin an encoding
	// with WithArrays, and to undeclared keys.
	Arrays ArrayEncoding
}

// Encoded is a request whose parameters have already been rendered. The
// Dispatcher sends exactly these bytes and the signer signs Payload(), so the
// two can never diverge.
type Encoded struct {
	Method Method
	Path   string
	Query  string
	Body   []byte
}

// Payload returns the canonical string covered by the signature: the query
// string without its leading '?' for GET/DELETE, the JSON body for PUT/POST.
func (e *Encoded) Payload() string {
	if p, _ := e.Method.placement(); p == inBody {
		return string(e.Body)
	}
	return e.Query
}

// RequestURI returns the path with the query string appended when present.
func (e *Encoded) RequestURI() string {
	if e.Query == "" {
		return e.Path
	}
	return e.Path + "?" + e.Query
}

// Encode renders params for method. GET/DELETE get a query string and no
// body; PUT/POST get a JSON object body (always at least "{}") and no query.
func (s Serializer) Encode(method Method, path string, params *Params) (*Encoded, error) {
	where, err := method.placement()
	if err != nil {
		return nil, err
	}
	enc := &Encoded{Method: method, Path: path}
	switch where {
	case inQuery:
		enc.Query, err = s.QueryString(params)
	case inBody:
		enc.Body, err = s.JSONBody(params)
	}
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// SignaturePayload returns the string a signature must cover for params sent
// with method.
func (s Serializer) SignaturePayload(method Method, params *Params) (string, error) {
	enc, err := s.Encode(method, "", params)
	if err != nil {
		return "", err
	}
	return enc.Payload(), nil
}

// QueryString renders params as k1=v1&k2=v2 with url.QueryEscape applied to
// keys and values, matching net/url's own escaping byte for byte.
func (s Serializer) QueryString(params *Params) (string, error) {
	var sb strings.Builder
	write := func(k, v string) {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	}

	for _, k := range s.orderedKeys(params) {
		v, _ := params.Get(k)
		if isNil(v) {
			continue
		}
		if list, ok := asList(v); ok {
			items := make([]string, 0, len(list))
			for _, item := range list {
				if isNil(item) {
					continue
				}
				str, err := scalarString(k, item)
				if err != nil {
					return "", err
				}
				items = append(items, str)
			}
			if len(items) == 0 {
				continue
			}
			if s.Schema.arraysFor(k, s.Arrays) == CommaJoin {
				write(k, strings.Join(items, ","))
				continue
			}
			for _, item := range items {
				write(k, item)
			}
			continue
		}
		str, err := scalarString(k, v)
		if err != nil {
			return "", err
		}
		write(k, str)
	}
	return sb.String(), nil
}

// JSONBody renders params as a JSON object with keys in serialization order.
// HTML characters are not escaped.
func (s Serializer) JSONBody(params *Params) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range s.orderedKeys(params) {
		v, _ := params.Get(k)
		if isNil(v) {
			continue
		}
		val, err := jsonValue(k, v)
		if err != nil {
			return nil, err
		}
		key, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s Serializer) orderedKeys(params *Params) []string {
	keys := make([]string, 0, params.Len())
	seen := make(map[string]bool, params.Len())
	for _, p := range s.Schema {
		if _, ok := params.Get(p.Key); ok && !seen[p.Key] {
			keys = append(keys, p.Key)
			seen[p.Key] = true
		}
	}
	for _, k := range params.Keys() {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	return keys
}

func jsonValue(key string, v any) ([]byte, error) {
	if list, ok := asList(v); ok {
		items := make([]any, 0, len(list))
		for _, item := range list {
			if isNil(item) {
				continue
			}
			n, err := normalize(key, item)
			if err != nil {
				return nil, err
			}
			items = append(items, n)
		}
		return marshalJSON(items)
	}
	n, err := normalize(key, v)
	if err != nil {
		return nil, err
	}
	return marshalJSON(n)
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// normalize reduces a supported scalar to a value encoding/json renders the
// same way scalarString does.
func normalize(key string, v any) (any, error) {
	v = deref(v)
	switch t := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return t, nil
	case float32:
		return formatFloat(key, v, float64(t), 32)
	case float64:
		return formatFloat(key, v, t, 64)
	case decimal.Decimal:
		return t.String(), nil
	case time.Time:
		return t.UnixMilli(), nil
	case []byte:
		return string(t), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	// named types such as `type Side string`
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(key, v, rv.Float(), rv.Type().Bits())
	}
	return nil, &EncodeError{Key: key, Value: v}
}

// NaN and the infinities have no plain decimal form.
func formatFloat(key string, v any, f float64, bits int) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &EncodeError{Key: key, Value: v}
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, bits)), nil
}

func scalarString(key string, v any) (string, error) {
	n, err := normalize(key, v)
	if err != nil {
		return "", err
	}
	switch t := n.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	}
	return fmt.Sprint(n), nil
}

// asList reports whether v is a slice or array of parameter values. Byte
// slices are not lists.
func asList(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return v
	}
	return rv.Interface()
}

package client

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"

	"github.com/vibekanban/desktop/common/api"
)

// Params are query parameters. A nil value, or a nil pointer, is absent and
// never serialized.
type Params map[string]any

// Request is one call through a Transport.
type Request struct {
	Verb   api.Verb
	Path   string
	Params Params // GET and DELETE
	Body   any    // POST and PUT; nil sends no body
}

// present returns the params with absent values removed.
func (p Params) present() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if isAbsent(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// encode renders the present params as a query string, keys sorted.
func (p Params) encode() string {
	q := url.Values{}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := p[k]
		if isAbsent(v) {
			continue
		}
		q.Set(k, scalar(v))
	}
	return q.Encode()
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func scalar(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface())
}

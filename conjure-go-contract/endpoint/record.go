// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package endpoint

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

// Scalar is the set of value types that may appear in a Params, Query or Body record.
type Scalar interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Entry is a single key and its canonical text value.
type Entry struct {
	Key   string
	Value string
}

// Record is an ordered mapping of unique keys to canonical text values.
// Rendering follows the record's own key order.
type Record []Entry

// Pair builds an Entry from a scalar value.
func Pair[V Scalar](key string, value V) Entry {
	return Entry{Key: key, Value: FormatScalar(value)}
}

// NewRecord builds a Record from entries. A repeated key replaces the earlier value in place.
func NewRecord(entries ...Entry) Record {
	var r Record
	for _, e := range entries {
		r = r.put(e.Key, e.Value)
	}
	return r
}

// Set returns a copy of r with key bound to value, keeping the position of an existing key.
// r itself is left unchanged.
func (r Record) Set(key, value string) Record {
	out := make(Record, len(r), len(r)+1)
	copy(out, r)
	return out.put(key, value)
}

// put binds key in place, appending when the key is new.
func (r Record) put(key, value string) Record {
	if i := r.index(key); i >= 0 {
		r[i].Value = value
		return r
	}
	return append(r, Entry{Key: key, Value: value})
}

func (r Record) index(key string) int {
	for i, e := range r {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func (r Record) Get(key string) (string, bool) {
	if i := r.index(key); i >= 0 {
		return r[i].Value, true
	}
	return "", false
}

func (r Record) Keys() []string {
	if len(r) == 0 {
		return nil
	}
	keys := make([]string, len(r))
	for i, e := range r {
		keys[i] = e.Key
	}
	return keys
}

// FormatScalar renders v as canonical text: strings verbatim, booleans as true/false,
// integers in decimal and floats in their shortest round-trip decimal form.
func FormatScalar[V Scalar](v V) string {
	s, _ := formatValue(reflect.ValueOf(v))
	return s
}

func formatValue(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return formatFloat(v.Float(), 32), true
	case reflect.Float64:
		return formatFloat(v.Float(), 64), true
	}
	return "", false
}

// formatFloat matches the textual form numbers take in URLs built by JavaScript clients:
// exponent notation outside [1e-6, 1e21) and no zero padding in the exponent.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// RecordOf converts v into a Record. Structs contribute their exported scalar fields in
// declaration order, named as FieldsOf names them; nil pointer fields and zero-valued omitempty
// fields are omitted. Maps with string keys are sorted by key since they carry no order of their
// own. Nil and None yield an empty record.
func RecordOf(v any) (Record, error) {
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case Record:
		return typed, nil
	case None, *None:
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return structRecord(rv)
	case reflect.Map:
		return mapRecord(rv)
	}
	return nil, newError(errors.InvalidContract, "record source must be a struct or a map",
		werror.SafeParam("type", rv.Type().String()))
}

func structRecord(rv reflect.Value) (Record, error) {
	fields, err := structFieldsOf(rv.Type())
	if err != nil {
		return nil, err
	}
	var r Record
	for _, f := range fields {
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		s, _ := formatValue(fv)
		r = r.put(f.Name, s)
	}
	return r, nil
}

func mapRecord(rv reflect.Value) (Record, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, newError(errors.InvalidContract, "record map keys must be strings",
			werror.SafeParam("type", rv.Type().String()))
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	r := make(Record, 0, len(keys))
	for _, k := range keys {
		val := rv.MapIndex(k)
		for val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer {
			if val.IsNil() {
				break
			}
			val = val.Elem()
		}
		s, ok := formatValue(val)
		if !ok {
			return nil, newError(errors.InvalidContract, "record values must be scalars",
				werror.SafeParam("key", k.String()),
				werror.SafeParam("type", val.Type().String()))
		}
		r = append(r, Entry{Key: k.String(), Value: s})
	}
	return r, nil
}

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
	"reflect"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

// Kind is the scalar category of a Params, Query or Body field.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Field describes one named scalar position of a request shape.
type Field struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
	// Flavor is the nominal tag of the field's type (for example "uuid"), empty for plain scalars.
	Flavor string `json:"flavor,omitempty" yaml:"flavor,omitempty"`
}

// Fields is an ordered list of field descriptors.
type Fields []Field

func (f Fields) Names() []string {
	if len(f) == 0 {
		return nil
	}
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

func (f Fields) Lookup(name string) (Field, bool) {
	for _, field := range f {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// None marks a request or response position that a contract does not declare.
type None struct{}

// Flavored is implemented by named primitive types that carry a nominal tag.
// Fields whose type implements Flavored record the tag in their descriptor.
type Flavored interface {
	Flavor() string
}

var (
	noneType     = reflect.TypeOf(None{})
	flavoredType = reflect.TypeOf((*Flavored)(nil)).Elem()
)

type structField struct {
	Field
	index     []int
	omitEmpty bool
}

// FieldsOf derives the field descriptors of a request shape type. Exported struct fields are
// read in declaration order, named by their json tag when present; fields tagged "-" are skipped.
// Pointer fields and fields tagged omitempty describe optional values. Nil and None describe an empty shape.
func FieldsOf(t reflect.Type) (Fields, error) {
	fields, err := structFieldsOf(t)
	if err != nil || len(fields) == 0 {
		return nil, err
	}
	out := make(Fields, len(fields))
	for i, f := range fields {
		out[i] = f.Field
	}
	return out, nil
}

func structFieldsOf(t reflect.Type) ([]structField, error) {
	if t == nil {
		return nil, nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == noneType {
		return nil, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, newError(errors.InvalidContract, "request shape must be a struct",
			werror.SafeParam("type", t.String()))
	}
	var fields []structField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, omitEmpty, skip := fieldName(sf)
		if skip {
			continue
		}
		kind, flavor, ok := scalarKind(sf.Type)
		if !ok {
			return nil, newError(errors.InvalidContract, "request shape field must be a scalar",
				werror.SafeParam("type", t.String()),
				werror.SafeParam("field", sf.Name),
				werror.SafeParam("fieldType", sf.Type.String()))
		}
		fields = append(fields, structField{
			Field: Field{Name: name, Kind: kind, Flavor: flavor},
			index:     sf.Index,
			omitEmpty: omitEmpty,
		})
	}
	return fields, nil
}

func fieldName(sf reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	if name == "" {
		name = sf.Name
	}
	return name, omitEmpty, false
}

func scalarKind(t reflect.Type) (Kind, string, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var kind Kind
	switch t.Kind() {
	case reflect.String:
		kind = KindString
	case reflect.Bool:
		kind = KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		kind = KindNumber
	default:
		return "", "", false
	}
	var flavor string
	if t.Implements(flavoredType) {
		flavor = reflect.Zero(t).Interface().(Flavored).Flavor()
	}
	return kind, flavor, true
}

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
	"strings"
)

// Segment is either a literal run of a path template or a single placeholder.
type Segment struct {
	Literal     string
	Placeholder string
}

func (s Segment) IsPlaceholder() bool {
	return s.Placeholder != ""
}

// Template is a tokenized path template. Placeholders are written ":name", where name starts with
// a letter, '_' or '$' and continues with letters, digits, '_', '$' or '-'. A ':' not followed by
// such a name is literal text, so "host:8080" and "a::b" contain no placeholders.
type Template struct {
	raw      string
	segments []Segment
}

// ParseTemplate tokenizes raw. Every string is a valid template.
func ParseTemplate(raw string) Template {
	t := Template{raw: raw}
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			t.segments = append(t.segments, Segment{Literal: literal.String()})
			literal.Reset()
		}
	}
	for i := 0; i < len(raw); {
		if raw[i] == ':' && i+1 < len(raw) && isNameStart(raw[i+1]) {
			j := i + 2
			for j < len(raw) && isNamePart(raw[j]) {
				j++
			}
			flush()
			t.segments = append(t.segments, Segment{Placeholder: raw[i+1 : j]})
			i = j
			continue
		}
		literal.WriteByte(raw[i])
		i++
	}
	flush()
	return t
}

func isNameStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || c == '-' || ('0' <= c && c <= '9')
}

func (t Template) String() string {
	return t.raw
}

func (t Template) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}

// Placeholders returns the distinct placeholder names in order of first appearance.
func (t Template) Placeholders() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, s := range t.segments {
		if !s.IsPlaceholder() {
			continue
		}
		if _, ok := seen[s.Placeholder]; ok {
			continue
		}
		seen[s.Placeholder] = struct{}{}
		names = append(names, s.Placeholder)
	}
	return names
}

// Render substitutes every placeholder bound in params and returns the resulting path together
// with the distinct names that had no value. Unbound placeholders are written back unchanged.
func (t Template) Render(params Record) (path string, missing []string) {
	if len(params) == 0 && len(t.Placeholders()) == 0 {
		return t.raw, nil
	}
	var out strings.Builder
	out.Grow(len(t.raw))
	seen := make(map[string]struct{})
	for _, s := range t.segments {
		if !s.IsPlaceholder() {
			out.WriteString(s.Literal)
			continue
		}
		if v, ok := params.Get(s.Placeholder); ok {
			out.WriteString(v)
			continue
		}
		out.WriteByte(':')
		out.WriteString(s.Placeholder)
		if _, ok := seen[s.Placeholder]; !ok {
			seen[s.Placeholder] = struct{}{}
			missing = append(missing, s.Placeholder)
		}
	}
	return out.String(), missing
}

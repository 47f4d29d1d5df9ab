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

package codecs

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/palantir/pkg/safejson"
	werror "github.com/palantir/witchcraft-go-error"
)

const (
	contentTypeJSON = "application/json"
)

// JSON codec encodes and decodes envelopes using github.com/palantir/pkg/safejson.
// Decoding uses json.Number for untyped numbers so large request ids and counters survive;
// encoding leaves HTML characters unescaped.
var JSON Codec = codecJSON{}

type codecJSON struct{}

// jsonDecoder bypasses the standard decoder for values that stream their own JSON.
type jsonDecoder interface {
	DecodeJSON(r io.Reader) error
}

// jsonEncoder bypasses the standard encoder for values that stream their own JSON.
type jsonEncoder interface {
	EncodeJSON(w io.Writer) error
}

func (codecJSON) Accept() string {
	return contentTypeJSON
}

func (codecJSON) ContentType() string {
	return contentTypeJSON
}

func (c codecJSON) Decode(r io.Reader, v interface{}) error {
	switch typed := v.(type) {
	case jsonDecoder:
		return werror.Wrap(typed.DecodeJSON(r), "DecodeJSON")
	case json.Unmarshaler:
		data, err := io.ReadAll(r)
		if err != nil {
			return werror.Wrap(err, "read failed")
		}
		return werror.Wrap(typed.UnmarshalJSON(data), "UnmarshalJSON")
	}
	return werror.Wrap(safejson.Decoder(r).Decode(v), "json.Decode")
}

func (c codecJSON) Unmarshal(data []byte, v interface{}) error {
	switch typed := v.(type) {
	case json.Unmarshaler:
		return werror.Wrap(typed.UnmarshalJSON(data), "UnmarshalJSON")
	case jsonDecoder:
		return werror.Wrap(typed.DecodeJSON(bytes.NewReader(data)), "DecodeJSON")
	}
	return werror.Wrap(safejson.Unmarshal(data, v), "json.Unmarshal")
}

func (c codecJSON) Encode(w io.Writer, v interface{}) error {
	switch typed := v.(type) {
	case jsonEncoder:
		return werror.Wrap(typed.EncodeJSON(w), "EncodeJSON")
	case json.Marshaler:
		out, err := typed.MarshalJSON()
		if err != nil {
			return werror.Wrap(err, "MarshalJSON")
		}
		_, err = w.Write(out)
		return werror.Wrap(err, "write failed")
	}
	return werror.Wrap(safejson.Encoder(w).Encode(v), "json.Encode")
}

func (c codecJSON) Marshal(v interface{}) ([]byte, error) {
	switch typed := v.(type) {
	case json.Marshaler:
		out, err := typed.MarshalJSON()
		return out, werror.Wrap(err, "MarshalJSON")
	case jsonEncoder:
		var buf bytes.Buffer
		err := typed.EncodeJSON(&buf)
		return buf.Bytes(), werror.Wrap(err, "EncodeJSON")
	}
	out, err := safejson.Marshal(v)
	return out, werror.Wrap(err, "json.Marshal")
}

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

// Package codecs encodes and decodes response envelopes and route manifests.
package codecs

import (
	"io"
	"mime"
	"strings"
)

// Decoder reads values of the media type named by Accept.
type Decoder interface {
	Accept() string
	Decode(r io.Reader, v interface{}) error
	Unmarshal(data []byte, v interface{}) error
}

// Encoder writes values of the media type named by ContentType.
type Encoder interface {
	ContentType() string
	Encode(w io.Writer, v interface{}) error
	Marshal(v interface{}) ([]byte, error)
}

type Codec interface {
	Decoder
	Encoder
}

// ForContentType returns the codec for a Content-Type header value, ignoring media type
// parameters such as charset.
func ForContentType(contentType string) (Codec, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(contentType)
	}
	switch strings.ToLower(mediaType) {
	case contentTypeJSON:
		return JSON, true
	case contentTypeYAML, "application/yaml", "text/yaml":
		return YAML, true
	}
	return nil, false
}

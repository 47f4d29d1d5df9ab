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

package envelope

import (
	"net/http"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/codecs"
)

// WriteSuccess writes s with status 200.
func WriteSuccess[T any](w http.ResponseWriter, s Success[T]) {
	write(w, http.StatusOK, s)
}

// WriteFail writes f with status 400.
func WriteFail(w http.ResponseWriter, f Fail) {
	write(w, http.StatusBadRequest, f)
}

// Write writes any envelope with the given status.
func Write(w http.ResponseWriter, status int, e Stated) {
	write(w, status, e)
}

func write(w http.ResponseWriter, status int, v interface{}) {
	out, err := codecs.JSON.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		out = []byte(`{"state":"fail","errors":{}}`)
	}
	w.Header().Set("Content-Type", codecs.JSON.ContentType()+"; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out) // There is nothing we can do on write failure.
}

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

package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestServicesConfig(t *testing.T) {
	for _, test := range []struct {
		Name           string
		ServiceName    string
		Config         ServicesConfig
		ExpectedConfig ClientConfig
	}{
		{
			Name:        "defaults",
			ServiceName: "my-service",
			Config: ServicesConfig{
				Default: ClientConfig{
					MissingPlaceholders: "fail",
					Headers:             map[string]string{"User-Agent": "default", "X-Env": "test"},
				},
				Services: map[string]ClientConfig{
					"my-service": {
						URIs:    []string{"https://my-service"},
						Headers: map[string]string{"User-Agent": "mine"},
					},
				},
			},
			ExpectedConfig: ClientConfig{
				ServiceName:         "my-service",
				URIs:                []string{"https://my-service"},
				MissingPlaceholders: "fail",
				Headers:             map[string]string{"User-Agent": "mine", "X-Env": "test"},
			},
		},
		{
			Name:        "unknown service uses defaults",
			ServiceName: "other",
			Config: ServicesConfig{
				Default: ClientConfig{
					URIs:                          []string{"https://default"},
					DisableTraceHeaderPropagation: &[]bool{true}[0],
				},
			},
			ExpectedConfig: ClientConfig{
				ServiceName:                   "other",
				URIs:                          []string{"https://default"},
				DisableTraceHeaderPropagation: &[]bool{true}[0],
			},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			actual := test.Config.ClientConfig(test.ServiceName)
			require.Equal(t, test.ExpectedConfig, actual)
		})
	}
}

func TestMustClientConfig(t *testing.T) {
	conf := ServicesConfig{Services: map[string]ClientConfig{"a": {URIs: []string{"https://a"}}}}
	c, err := conf.MustClientConfig("a")
	require.NoError(t, err)
	assert.Equal(t, "a", c.ServiceName)

	_, err = conf.MustClientConfig("b")
	assert.Error(t, err)
}

func TestServicesConfigYAML(t *testing.T) {
	var conf ServicesConfig
	require.NoError(t, yaml.Unmarshal([]byte(`
uris:
  - https://default
missing-placeholders: leave
services:
  users:
    uris:
      - https://users-1
      - https://users-2
    missing-placeholders: fail
    headers:
      X-Client: endpoint-test
`), &conf))

	users := conf.ClientConfig("users")
	assert.Equal(t, []string{"https://users-1", "https://users-2"}, users.URIs)
	assert.Equal(t, "fail", users.MissingPlaceholders)
	assert.Equal(t, map[string]string{"X-Client": "endpoint-test"}, users.Headers)

	other := conf.ClientConfig("other")
	assert.Equal(t, []string{"https://default"}, other.URIs)
	assert.Equal(t, "leave", other.MissingPlaceholders)
}

func TestClientConfigValidate(t *testing.T) {
	assert.NoError(t, ClientConfig{URIs: []string{"https://a"}}.Validate())
	assert.Error(t, ClientConfig{}.Validate())
	assert.Error(t, ClientConfig{URIs: []string{"https://a"}, MissingPlaceholders: "sometimes"}.Validate())
}

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
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
)

// ServicesConfig is the top-level configuration for the request factories of every service a
// process calls. Default values apply to any field not set for a specific service.
type ServicesConfig struct {
	// Default values will be used for any field which is not set for a specific service.
	Default ClientConfig `json:",inline" yaml:",inline"`
	// Services is a map of serviceName (e.g. "my-api") to service-specific configuration.
	Services map[string]ClientConfig `json:"services,omitempty" yaml:"services,omitempty"`
}

// ClientConfig configures how requests to a single service are prepared.
type ClientConfig struct {
	ServiceName string `json:"-" yaml:"-"`
	// URIs is a list of fully specified base URIs for the service. These can optionally include a path
	// which will be prepended to the prepared endpoint path.
	URIs []string `json:"uris,omitempty" yaml:"uris,omitempty"`
	// MissingPlaceholders overrides the missing placeholder policy of every contract prepared for the
	// service: "leave" keeps unresolved ":name" tokens, "fail" rejects the request. Unset keeps each
	// contract's own policy.
	MissingPlaceholders string `json:"missing-placeholders,omitempty" yaml:"missing-placeholders,omitempty"`
	// DisableTraceHeaderPropagation stops the factory from copying the trace id of the request
	// context into the X-B3-TraceId header.
	DisableTraceHeaderPropagation *bool `json:"disable-trace-header-propagation,omitempty" yaml:"disable-trace-header-propagation,omitempty"`
	// Headers are set on every prepared request.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// MustClientConfig returns an error if the service name is not configured.
func (c ServicesConfig) MustClientConfig(serviceName string) (ClientConfig, error) {
	if _, ok := c.Services[serviceName]; !ok {
		return ClientConfig{}, werror.Error("ClientConfiguration not found for serviceName", werror.SafeParam("serviceName", serviceName))
	}
	return c.ClientConfig(serviceName), nil
}

// ClientConfig returns the default configuration merged with service-specific configuration.
// If the serviceName is not in the service map, an empty configuration (plus defaults) is used.
func (c ServicesConfig) ClientConfig(serviceName string) ClientConfig {
	conf, ok := c.Services[serviceName]
	if !ok {
		conf = ClientConfig{}
	}
	conf.ServiceName = serviceName

	return MergeClientConfig(conf, c.Default)
}

// MergeClientConfig merges two instances of ClientConfig, preferring values from conf over defaults.
// Headers are merged key by key. The ServiceName field is not affected.
func MergeClientConfig(conf, defaults ClientConfig) ClientConfig {
	if len(conf.URIs) == 0 {
		conf.URIs = defaults.URIs
	}
	if conf.MissingPlaceholders == "" {
		conf.MissingPlaceholders = defaults.MissingPlaceholders
	}
	if conf.DisableTraceHeaderPropagation == nil {
		conf.DisableTraceHeaderPropagation = defaults.DisableTraceHeaderPropagation
	}
	if len(defaults.Headers) > 0 {
		headers := make(map[string]string, len(defaults.Headers)+len(conf.Headers))
		for k, v := range defaults.Headers {
			headers[k] = v
		}
		for k, v := range conf.Headers {
			headers[k] = v
		}
		conf.Headers = headers
	}
	return conf
}

// Validate checks that the configuration can prepare requests.
func (c ClientConfig) Validate() error {
	if len(c.URIs) == 0 {
		return werror.Error("client configuration has no URIs", werror.SafeParam("serviceName", c.ServiceName))
	}
	if c.MissingPlaceholders != "" {
		if _, err := endpoint.ParseMissingPolicy(c.MissingPlaceholders); err != nil {
			return werror.Wrap(err, "invalid client configuration", werror.SafeParam("serviceName", c.ServiceName))
		}
	}
	return nil
}

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

package main

import (
	"fmt"
	"os"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/openapi"
)

type LintCmd struct {
	Manifest string `arg:"" help:"Route manifest (YAML)." type:"existingfile"`
}

func (c *LintCmd) Run(e *env) error {
	registry, err := loadRegistry(e, c.Manifest)
	if err != nil {
		return err
	}
	for _, d := range registry.Descriptors() {
		if unused := d.UnusedParams(); len(unused) > 0 {
			_, _ = fmt.Fprintf(e.out, "warning: %s: params never used by %s: %s\n", d.Name, d.Endpoint, strings.Join(unused, ", "))
		}
	}
	_, err = fmt.Fprintf(e.out, "%s: %d routes ok\n", c.Manifest, registry.Len())
	return err
}

type PrepareCmd struct {
	Manifest string   `arg:"" help:"Route manifest (YAML)." type:"existingfile"`
	Route    string   `arg:"" help:"Name of the route to render."`
	Params   []string `help:"Path parameter as key=value. Repeatable." name:"param" short:"p" sep:"none"`
	Query    []string `help:"Query parameter as key=value, kept in the given order. Repeatable." name:"query" short:"q" sep:"none"`
	Strict   bool     `help:"Fail when a placeholder has no value, regardless of the manifest policy."`
}

func (c *PrepareCmd) Run(e *env) error {
	registry, err := loadRegistry(e, c.Manifest)
	if err != nil {
		return err
	}
	params, err := parsePairs(c.Params)
	if err != nil {
		return err
	}
	query, err := parsePairs(c.Query)
	if err != nil {
		return err
	}
	var prepared string
	if c.Strict {
		d, ok := registry.Lookup(c.Route)
		if !ok {
			return werror.Error("no route with this name", werror.SafeParam("name", c.Route))
		}
		prepared, err = endpoint.PrepareEndpointStrict(d.Endpoint, params, query)
	} else {
		prepared, err = registry.Prepare(c.Route, params, query)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, prepared)
	return err
}

type ImportCmd struct {
	Document            string `arg:"" help:"OpenAPI 3 document (YAML or JSON)." type:"existingfile"`
	MissingPlaceholders string `help:"Policy written to the manifest." enum:"leave,fail" default:"leave"`
}

func (c *ImportCmd) Run(e *env) error {
	data, err := os.ReadFile(c.Document)
	if err != nil {
		return werror.Wrap(err, "failed to read OpenAPI document")
	}
	descriptors, err := openapi.Import(e.ctx, data)
	if err != nil {
		return err
	}
	policy, err := endpoint.ParseMissingPolicy(c.MissingPlaceholders)
	if err != nil {
		return err
	}
	out, err := endpoint.ManifestFromDescriptors(policy, descriptors...).Marshal()
	if err != nil {
		return err
	}
	svc1log.FromContext(e.ctx).Debug("Imported OpenAPI document.",
		svc1log.SafeParam("routes", len(descriptors)))
	_, err = e.out.Write(out)
	return err
}

func loadRegistry(e *env, path string) (*endpoint.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werror.Wrap(err, "failed to open manifest")
	}
	defer func() {
		_ = f.Close()
	}()
	manifest, err := endpoint.LoadManifest(f)
	if err != nil {
		return nil, withProblems(err)
	}
	registry, err := manifest.Registry(e.ctx)
	if err != nil {
		return nil, withProblems(err)
	}
	return registry, nil
}

// withProblems spells out validation findings, which werror keeps in params rather than the message.
func withProblems(err error) error {
	problems := endpoint.Problems(err)
	if len(problems) == 0 {
		return err
	}
	return fmt.Errorf("%w:\n  %s", err, strings.Join(problems, "\n  "))
}

func parsePairs(pairs []string) (endpoint.Record, error) {
	var record endpoint.Record
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, werror.Error("expected key=value", werror.UnsafeParam("pair", pair))
		}
		record = record.Set(key, value)
	}
	return record, nil
}

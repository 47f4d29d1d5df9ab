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
	"context"
	"sync"

	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"

	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

// Registry holds validated endpoint descriptors by name. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Descriptor
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register validates and adds each contract. Registration stops at the first contract that fails
// validation or whose name is already taken; contracts registered before it remain registered.
func (r *Registry) Register(ctx context.Context, contracts ...Described) error {
	for _, c := range contracts {
		if err := r.register(ctx, c.Descriptor()); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register for package initialization; it panics on the first invalid contract.
func (r *Registry) MustRegister(ctx context.Context, contracts ...Described) {
	if err := r.Register(ctx, contracts...); err != nil {
		panic(err)
	}
}

func (r *Registry) register(ctx context.Context, d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Missing == "" {
		d.Missing = LeaveUnresolved
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[d.Name]; ok {
		return newError(errors.InvalidContract, "endpoint contract name is already registered",
			werror.SafeParam("name", d.Name),
			werror.SafeParam("existingMethod", string(existing.Method)),
			werror.UnsafeParam("existingEndpoint", existing.Endpoint))
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)

	logger := svc1log.FromContext(ctx)
	if unused := d.UnusedParams(); len(unused) > 0 {
		logger.Warn("Endpoint contract declares params that its template never uses.",
			svc1log.SafeParam("name", d.Name),
			svc1log.SafeParam("unusedParams", unused),
			svc1log.UnsafeParam("endpoint", d.Endpoint))
	}
	logger.Debug("Registered endpoint contract.",
		svc1log.SafeParam("name", d.Name),
		svc1log.SafeParam("method", string(d.Method)),
		svc1log.SafeParam("flavor", string(d.Flavor)),
		svc1log.UnsafeParam("endpoint", d.Endpoint))
	return nil
}

func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Descriptors returns the registered descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *Registry) lookup(name string) (Descriptor, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return Descriptor{}, newError(errors.InvalidContract, "endpoint contract is not registered",
			werror.SafeParam("name", name))
	}
	return d, nil
}

// Prepare renders the named contract's URL under its missing placeholder policy.
func (r *Registry) Prepare(name string, params, query Record) (string, error) {
	d, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return d.Prepare(params, query)
}

// ValidateEndpoint checks literal against the named contract's template.
func (r *Registry) ValidateEndpoint(name, literal string) (string, error) {
	d, err := r.lookup(name)
	if err != nil {
		return literal, err
	}
	return d.ValidateEndpoint(literal)
}

/*
MIT License

Copyright (c) 2019 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package context is a per-connection scoped key/value carrier layered over a
// context.Context. A Connection snapshots one of these at birth (Clone) so
// that diagnostic fields set during one keep-alive request (peer annotations,
// trace ids) never leak into the next request on the same connection.
package context

import (
	"context"

	"github.com/nabbar/htloop/atomic"
)

type FuncWalk[T comparable] func(key T, val interface{}) bool

type MapManage[T comparable] interface {
	// Clean removes all the key-value pairs from the map.
	Clean()
	// Load loads the value associated with the given key from the map.
	Load(key T) (val interface{}, ok bool)
	// Store stores the given value in the map associated with the key.
	// A nil value removes the key instead of storing it.
	Store(key T, cfg interface{})
	// Delete deletes the value associated with the given key from the map.
	Delete(key T)
}

type Context interface {
	// GetContext returns the context.Context this scope is layered over.
	GetContext() context.Context
}

// Scope is an immutable-enough-in-practice diagnostic context: callers add
// fields during a request and Clone() takes a snapshot for the next one.
type Scope[T comparable] interface {
	context.Context
	MapManage[T]
	Context

	// Clone creates an independent copy layered over ctx (this scope's own
	// context.Context when ctx is nil), holding a copy of the current pairs in
	// a separate map. It returns nil once this scope's context is done.
	Clone(ctx context.Context) Scope[T]
	// Walk iterates over all key/value pairs; returning false from fct stops early.
	Walk(fct FuncWalk[T])
}

// New returns a new Scope layered over ctx (context.Background() if nil).
func New[T comparable](ctx context.Context) Scope[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	return &ccx[T]{x: ctx, m: atomic.NewMapTyped[T, interface{}]()}
}

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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/htloop/httpcore"
)

// Recorder implements httpcore.Recorder and exposes the registry holding the
// underlying series so an embedding application can serve them on its own
// /metrics handler.
type Recorder interface {
	httpcore.Recorder

	// Registry returns the registry these metrics were registered on.
	Registry() *prometheus.Registry
}

// New builds a Recorder with all series registered under namespace on a
// private registry (never the default global one, so a process can run more
// than one Server without a duplicate-registration panic).
func New(namespace string) Recorder {
	return newRecorder(namespace)
}
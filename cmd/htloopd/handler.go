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

package main

import (
	"fmt"

	"github.com/nabbar/htloop/httpcore"
	"github.com/nabbar/htloop/logger"
)

// diagnosticHandler is the RequestCallback htloopd installs when no handler
// plug-in mechanism is configured (response framing and routing are out of
// this module's scope): it writes a fixed-length plain-text line naming the
// method, path and elapsed parse time, then finishes the request.
func diagnosticHandler(log logger.Logger) func(*httpcore.Request) {
	return func(r *httpcore.Request) {
		body := fmt.Sprintf("htloopd: %s %s in %s\n", r.Method, r.Path, r.RequestTime())

		resp := fmt.Sprintf("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: %d\r\nConnection: %s\r\n\r\n%s",
			len(body), connectionHeader(r), body)

		if err := r.Write([]byte(resp)); err != nil {
			log.Warning("failed writing response to %s: %v", nil, r.RemoteIP, err)
		}

		r.Finish()
	}
}

func connectionHeader(r *httpcore.Request) string {
	if r.SupportsHTTP11() {
		return "keep-alive"
	}
	return "close"
}

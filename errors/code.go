/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package errors

import "strconv"

// CodeError is a numeric error classification, similar in spirit to an HTTP
// status code: a small closed set of values the rest of this module switches
// on, rather than comparing error strings.
type CodeError uint16

const (
	UnknownError CodeError = iota

	// MalformedRequest covers a bad request line, a version missing the
	// "HTTP/" prefix, or a line longer than the stream's ReadUntil budget.
	MalformedRequest
	// TLSHandshakeEOF is a peer disconnect mid-handshake; treated as silent.
	TLSHandshakeEOF
	// TLSHandshakeAborted is a peer-aborted handshake; treated as silent.
	TLSHandshakeAborted
	// TLSOther is any other TLS failure on accept; logged at error level.
	TLSOther
	// SocketError is a non-TLS accept-time socket failure.
	SocketError
)

var messages = map[CodeError]string{
	UnknownError:         "unknown error",
	MalformedRequest:     "malformed request",
	TLSHandshakeEOF:      "tls handshake: peer closed connection",
	TLSHandshakeAborted:  "tls handshake: connection aborted by peer",
	TLSOther:             "tls handshake failed",
	SocketError:          "socket error",
}

// Message returns the registered human-readable message for the code, or
// "unknown error" if the code is not one of the constants above.
func (c CodeError) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return messages[UnknownError]
}

func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

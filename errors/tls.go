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

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// ClassifyTLS maps a raw error from a just-accepted connection's TLS
// handshake onto one of the three handshake-failure codes: an EOF-style
// disconnect or a TCP abort mid-handshake is an expected, silent peer
// disconnect (HTTPServer._handle_connection's wrap_socket try/except in
// _examples/original_source/tornado/httpserver.py catches exactly
// ssl.SSL_ERROR_EOF and errno.ECONNABORTED this way); anything else is a
// real failure that should be logged and surfaced.
func ClassifyTLS(err error) CodeError {
	if err == nil {
		return UnknownError
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return TLSHandshakeEOF
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNABORTED) || errors.Is(opErr.Err, syscall.ECONNRESET) {
			return TLSHandshakeAborted
		}
	}
	if errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.ECONNRESET) {
		return TLSHandshakeAborted
	}

	return TLSOther
}

// IsSilentTLS reports whether code is one of the two handshake-failure
// kinds the spec treats as a silent peer disconnect (no error-level log).
func IsSilentTLS(code CodeError) bool {
	return code == TLSHandshakeEOF || code == TLSHandshakeAborted
}

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

// Package certificates is a small bag of TLS listen-side options: one or more
// certificate/key pairs, an optional client CA pool for mutual TLS, and a
// min/max protocol version. TLSConfig.Build turns the bag into a *tls.Config
// ready to hand to a Listener.
package certificates

import "crypto/tls"

// ClientAuth mirrors tls.ClientAuthType so config files never need to import crypto/tls.
type ClientAuth uint8

const (
	NoClientCert ClientAuth = iota
	RequestClientCert
	RequireAnyClientCert
	VerifyClientCertIfGiven
	RequireAndVerifyClientCert
)

func (c ClientAuth) TLS() tls.ClientAuthType {
	switch c {
	case RequestClientCert:
		return tls.RequestClientCert
	case RequireAnyClientCert:
		return tls.RequireAnyClientCert
	case VerifyClientCertIfGiven:
		return tls.VerifyClientCertIfGiven
	case RequireAndVerifyClientCert:
		return tls.RequireAndVerifyClientCert
	default:
		return tls.NoClientCert
	}
}

// TLSConfig builds a *tls.Config from a Config bag. Build runs once at
// server Start; it is not hot-path code.
type TLSConfig interface {
	// Build returns a *tls.Config ready for use by a Listener, or an error
	// describing the first certificate/CA file that failed to load.
	Build() (*tls.Config, error)
	// LenCertificatePair reports how many certificate/key pairs are loaded.
	LenCertificatePair() int
}

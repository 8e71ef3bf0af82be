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

package certificates

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

type config struct {
	cfg Config
}

func (c *config) LenCertificatePair() int {
	return len(c.cfg.Certs)
}

func (c *config) Build() (*tls.Config, error) {
	t := &tls.Config{
		MinVersion: c.cfg.VersionMin,
		MaxVersion: c.cfg.VersionMax,
		ClientAuth: c.cfg.ClientAuth.TLS(),
	}

	for _, p := range c.cfg.Certs {
		crt, e := tls.LoadX509KeyPair(p.CertFile, p.KeyFile)
		if e != nil {
			return nil, fmt.Errorf("loading certificate pair %s/%s: %w", p.CertFile, p.KeyFile, e)
		}
		t.Certificates = append(t.Certificates, crt)
	}

	if len(c.cfg.ClientCA) > 0 {
		pool := x509.NewCertPool()
		for _, f := range c.cfg.ClientCA {
			b, e := os.ReadFile(f)
			if e != nil {
				return nil, fmt.Errorf("reading client CA %s: %w", f, e)
			}
			if !pool.AppendCertsFromPEM(b) {
				return nil, fmt.Errorf("client CA %s: no certificate found in PEM", f)
			}
		}
		t.ClientCAs = pool
	}

	return t, nil
}

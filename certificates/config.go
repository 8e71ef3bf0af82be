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
	libval "github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/htloop/errors"
)

// CertPair is one certificate/key file pair to load into the TLS config.
type CertPair struct {
	CertFile string `mapstructure:"certFile" json:"certFile" yaml:"certFile" toml:"certFile" validate:"required,file"`
	KeyFile  string `mapstructure:"keyFile" json:"keyFile" yaml:"keyFile" toml:"keyFile" validate:"required,file"`
}

// Config is the serializable TLS bag: what a listener loads at startup.
type Config struct {
	Certs      []CertPair `mapstructure:"certs" json:"certs" yaml:"certs" toml:"certs" validate:"required,min=1,dive"`
	ClientCA   []string   `mapstructure:"clientCA" json:"clientCA" yaml:"clientCA" toml:"clientCA" validate:"omitempty,dive,file"`
	ClientAuth ClientAuth `mapstructure:"clientAuth" json:"clientAuth" yaml:"clientAuth" toml:"clientAuth"`
	VersionMin uint16     `mapstructure:"versionMin" json:"versionMin" yaml:"versionMin" toml:"versionMin"`
	VersionMax uint16     `mapstructure:"versionMax" json:"versionMax" yaml:"versionMax" toml:"versionMax"`
}

func (c Config) Validate() liberr.Error {
	if e := libval.New().Struct(c); e != nil {
		return liberr.New(liberr.MalformedRequest, e)
	}
	return nil
}

// New builds the runtime TLSConfig from this serializable bag.
func (c Config) New() TLSConfig {
	return &config{cfg: c}
}

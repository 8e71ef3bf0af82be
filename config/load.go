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

package config

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/nabbar/htloop/duration"
	liberr "github.com/nabbar/htloop/errors"
)

// durationDecodeHook lets ServerConfig.ConnectionTimeout (a duration.Duration,
// not the time.Duration mapstructure.StringToTimeDurationHookFunc matches)
// accept the same quoted duration strings a config file would use for any
// other duration field, e.g. "90s" or "5m".
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(duration.Duration(0)) {
			return data, nil
		}
		if from.Kind() != reflect.String {
			return data, nil
		}
		return duration.Parse(data.(string))
	}
}

// Load reads a ServerConfig from path (any format Viper supports: json,
// yaml, toml, ...) via the mapstructure tags on ServerConfig. The returned
// config has no RequestCallback; the caller must set one with
// SetRequestCallback before Validate or Server construction.
func Load(path string) (*ServerConfig, liberr.Error) {
	v := viper.New()
	v.SetConfigFile(path)

	if e := v.ReadInConfig(); e != nil {
		return nil, liberr.New(liberr.MalformedRequest, e)
	}

	c := &ServerConfig{}
	e := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		durationDecodeHook(),
	)))
	if e != nil {
		return nil, liberr.New(liberr.MalformedRequest, e)
	}

	return c, nil
}

/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package logger provides a small logrus-backed structured logger used by every
// component of htloop: connection lifecycle, listener accept errors and malformed
// request rejections all flow through here instead of the standard "log" package.
package logger

import (
	"fmt"
	"io"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

// Logger is the logging surface every package in this module depends on.
type Logger interface {
	SetLevel(lvl Level)
	GetLevel() Level

	SetFields(f Fields)
	GetFields() Fields

	// WithFields returns a clone of the logger with the given fields merged in,
	// without mutating the receiver. Used to scope a peer IP / connection id to
	// a burst of related log entries.
	WithFields(f Fields) Logger

	Debug(message string, data interface{}, args ...interface{})
	Info(message string, data interface{}, args ...interface{})
	Warning(message string, data interface{}, args ...interface{})
	Error(message string, data interface{}, args ...interface{})
}

type logger struct {
	lvl Level
	fld Fields
	log *logrus.Logger
}

// New returns a Logger writing through a colorable hook, at InfoLevel: info
// and debug entries go to stdout, warning and above to stderr.
func New() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.TraceLevel)
	l.AddHook(newConsoleHook(colorable.NewColorableStdout(), colorable.NewColorableStderr()))

	return &logger{
		lvl: InfoLevel,
		fld: NewFields(),
		log: l,
	}
}

// NewDiscard returns a Logger that drops every entry; useful in tests.
func NewDiscard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logger{lvl: NilLevel, fld: NewFields(), log: l}
}

func (o *logger) SetLevel(lvl Level) { o.lvl = lvl }
func (o *logger) GetLevel() Level    { return o.lvl }

func (o *logger) SetFields(f Fields) { o.fld = f }
func (o *logger) GetFields() Fields  { return o.fld }

func (o *logger) WithFields(f Fields) Logger {
	return &logger{
		lvl: o.lvl,
		fld: o.fld.Merge(f),
		log: o.log,
	}
}

func (o *logger) log_(lvl Level, message string, data interface{}, args ...interface{}) {
	if lvl > o.lvl {
		return
	}

	msg := message
	if len(args) > 0 {
		msg = fmt.Sprintf(message, args...)
	}

	e := o.log.WithFields(o.fld.Logrus())
	if data != nil {
		e = e.WithField("data", data)
	}

	e.Log(lvl.logrus(), msg)
}

func (o *logger) Debug(message string, data interface{}, args ...interface{}) {
	o.log_(DebugLevel, message, data, args...)
}

func (o *logger) Info(message string, data interface{}, args ...interface{}) {
	o.log_(InfoLevel, message, data, args...)
}

func (o *logger) Warning(message string, data interface{}, args ...interface{}) {
	o.log_(WarnLevel, message, data, args...)
}

func (o *logger) Error(message string, data interface{}, args ...interface{}) {
	o.log_(ErrorLevel, message, data, args...)
}

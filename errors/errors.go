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
	"fmt"
	"runtime"
)

// Error extends the standard error with a CodeError classification, an
// optional parent chain, and the call site that raised it.
type Error interface {
	error

	IsCode(code CodeError) bool
	HasCode(code CodeError) bool
	Code() CodeError

	HasParent() bool
	Parent() []error

	File() string
	Line() int
}

type cerr struct {
	code   CodeError
	msg    string
	file   string
	line   int
	parent []error
}

// New creates an Error for the given code, capturing the caller's file/line.
// Any non-nil parents are attached so the original cause survives in logs.
func New(code CodeError, parent ...error) Error {
	_, file, line, _ := runtime.Caller(1)

	e := &cerr{
		code: code,
		msg:  code.Message(),
		file: file,
		line: line,
	}

	for _, p := range parent {
		if p != nil {
			e.parent = append(e.parent, p)
		}
	}

	return e
}

func (e *cerr) Error() string {
	if len(e.parent) == 0 {
		return fmt.Sprintf("[%d] %s", e.code, e.msg)
	}
	return fmt.Sprintf("[%d] %s: %s", e.code, e.msg, e.parent[len(e.parent)-1].Error())
}

func (e *cerr) IsCode(code CodeError) bool { return e.code == code }

func (e *cerr) HasCode(code CodeError) bool {
	if e.code == code {
		return true
	}
	for _, p := range e.parent {
		if pe, ok := p.(Error); ok && pe.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *cerr) Code() CodeError { return e.code }

func (e *cerr) HasParent() bool { return len(e.parent) > 0 }

func (e *cerr) Parent() []error { return e.parent }

func (e *cerr) File() string { return e.file }

func (e *cerr) Line() int { return e.line }

package netstream

import (
	"io"

	liberr "github.com/nabbar/htloop/errors"
)

func (s *stream) ReadUntil(delim byte) ([]byte, error) {
	max := s.MaxBufferSize()

	var acc []byte
	for {
		b, err := s.buf.ReadByte()
		if err != nil {
			return acc, err
		}
		acc = append(acc, b)

		if len(acc) > max {
			return acc, liberr.New(liberr.MalformedRequest)
		}
		if b == delim {
			return acc, nil
		}
	}
}

func (s *stream) ReadExactly(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(s.buf, b); err != nil {
		return nil, err
	}
	return b, nil
}

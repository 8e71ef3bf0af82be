package httpcore

import (
	"io"
	"strconv"
	"strings"

	liberr "github.com/nabbar/htloop/errors"
)

// maxHeaderLine bounds both a single header line (via the stream's own
// ReadUntil budget) and the cumulative size of the whole request-line +
// header block, mirroring the single max_buffer_size guarding one
// read_until("\r\n\r\n") call in HTTPConnection._on_headers
// (_examples/original_source/tornado/httpserver.py).
const maxHeaderLine = 8 * 1024

// readHeaders blocks (on whichever goroutine calls it) until a full request
// line + header block has arrived, then parses and dispatches it. It is the
// AwaitingHeaders state: entered when Start runs and re-entered
// every time the finish procedure decides to keep the connection alive.
func (c *Connection) readHeaders() {
	c.setState(AwaitingHeaders)
	c.armIdleTimer()

	reqLine, err := c.stream.ReadUntil('\n')
	if err != nil {
		if err == io.EOF && len(reqLine) == 0 {
			c.close()
			return
		}
		c.malformed("reading request line: %v", err)
		return
	}

	method, uri, version, perr := parseRequestLine(reqLine)
	if perr != nil {
		c.malformed("%v", perr)
		return
	}

	headers := NewHeader()
	headerBytes := len(reqLine)
	for {
		line, err := c.stream.ReadUntil('\n')
		if err != nil {
			c.malformed("reading headers: %v", err)
			return
		}

		headerBytes += len(line)
		if headerBytes > maxHeaderLine {
			c.malformed("header block exceeds max size %d", maxHeaderLine)
			return
		}

		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}

		name, value, ok := splitHeaderLine(trimmed)
		if !ok {
			c.malformed("malformed header line %q", trimmed)
			return
		}
		headers.Add(name, value)
	}

	req := c.newRequest(method, uri, version, headers)

	cl := headers.Get("Content-Length")
	if cl == "" {
		c.dispatch(req)
		return
	}

	n, err := strconv.Atoi(cl)
	if err != nil || n < 0 {
		c.malformed("invalid Content-Length %q", cl)
		return
	}
	if n > c.cfg.MaxBufferSize {
		c.malformed("Content-Length %d exceeds max buffer size %d", n, c.cfg.MaxBufferSize)
		return
	}

	if strings.EqualFold(headers.Get("Expect"), "100-continue") {
		_ = c.write([]byte("HTTP/1.1 100 (Continue)\r\n\r\n"))
	}

	c.readBody(req, n)
}

// parseRequestLine splits "METHOD URI VERSION\r\n" into its three tokens.
func parseRequestLine(line string) (method, uri, version string, err liberr.Error) {
	trimmed := strings.TrimRight(line, "\r\n")
	tokens := strings.Split(trimmed, " ")

	if len(tokens) != 3 {
		return "", "", "", liberr.New(liberr.MalformedRequest)
	}
	if !strings.HasPrefix(tokens[2], "HTTP/") {
		return "", "", "", liberr.New(liberr.MalformedRequest)
	}

	return tokens[0], tokens[1], tokens[2], nil
}

func splitHeaderLine(line string) (name, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return line[:i], strings.TrimSpace(line[i+1:]), true
}

func (c *Connection) malformed(format string, args ...interface{}) {
	c.record(Recorder.MalformedRequest)
	c.log.Info("malformed request from %s: "+format, nil, append([]interface{}{c.remoteIP}, args...)...)
	c.close()
}

package httpcore

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
)

func (c *Connection) readBody(req *Request, n int) {
	c.setState(AwaitingBody)
	c.armIdleTimer()

	body, err := c.stream.ReadExactly(n)
	if err != nil {
		c.malformed("reading body: %v", err)
		return
	}

	req.Body = body
	decodeBody(req)

	c.dispatch(req)
}

// decodeBody fills req.Arguments/req.Files from req.Body, activated only
// for POST and PUT per spec.md §4.5.
func decodeBody(req *Request) {
	if req.Method != "POST" && req.Method != "PUT" {
		return
	}

	ct := req.Headers.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		decodeURLEncodedBody(req)
	case strings.HasPrefix(ct, "multipart/form-data"):
		decodeMultipartBody(req, ct)
	}
}

func decodeURLEncodedBody(req *Request) {
	values, err := url.ParseQuery(string(req.Body))
	if err != nil {
		return
	}
	for k, vs := range values {
		for _, v := range vs {
			if v == "" {
				continue
			}
			req.Arguments[k] = append(req.Arguments[k], v)
		}
	}
}

func decodeMultipartBody(req *Request, contentType string) {
	boundary := multipartBoundary(contentType)
	if boundary == "" {
		req.conn.log.Warning("multipart/form-data with no boundary parameter", nil)
		return
	}

	mr := multipart.NewReader(bytes.NewReader(req.Body), boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return
		}

		name := part.FormName()
		if filename := part.FileName(); filename != "" {
			req.Files[name] = append(req.Files[name], UploadedFile{
				Filename:    filename,
				ContentType: part.Header.Get("Content-Type"),
				Body:        data,
			})
			continue
		}

		if v := string(data); v != "" {
			req.Arguments[name] = append(req.Arguments[name], v)
		}
	}
}

func multipartBoundary(contentType string) string {
	for _, part := range strings.Split(contentType, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "boundary=") {
			return strings.Trim(strings.TrimPrefix(part, "boundary="), `"`)
		}
	}
	return ""
}

package httpcore

import (
	"crypto/x509"
	"time"

	dctx "github.com/nabbar/htloop/context"
)

// UploadedFile is one part of a multipart/form-data upload.
type UploadedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Arguments maps a form/query field name to its non-empty values.
type Arguments map[string][]string

// Files maps a multipart field name to the uploads received under it.
type Files map[string][]UploadedFile

// Request is the record a Connection builds from one parsed HTTP/1.x
// request and hands to the application callback. It is mutable while the
// Connection is still parsing the body, and treated as read-only by the
// callback except through Write/Finish, which delegate back to the
// connection that owns it.
type Request struct {
	Method  string
	URI     string
	Version string
	Headers Header
	Body    []byte

	RemoteIP string
	Protocol string
	Host     string
	Path     string
	Query    string

	Arguments Arguments
	Files     Files

	// DiagnosticContext is a snapshot of the connection's diagnostic scope
	// taken when this request was dispatched: fields set through it during
	// one request never leak into the next request on the same keep-alive
	// connection (spec.md §5, "ambient diagnostic context").
	DiagnosticContext dctx.Scope[string]

	conn       *Connection
	startTime  time.Time
	finishTime time.Time
	finished   bool
}

// SupportsHTTP11 reports whether the request line declared HTTP/1.1.
func (r *Request) SupportsHTTP11() bool {
	return r.Version == "HTTP/1.1"
}

// Write forwards chunk to the owning connection's stream.
func (r *Request) Write(chunk []byte) error {
	return r.conn.write(chunk)
}

// Finish marks the request complete and runs (or schedules) the
// connection's finish procedure.
func (r *Request) Finish() {
	if r.finished {
		panic("httpcore: Request.Finish called twice")
	}
	r.finished = true
	r.finishTime = time.Now()
	r.conn.finish(r)
}

// FullURL reconstructs protocol://host + uri.
func (r *Request) FullURL() string {
	return r.Protocol + "://" + r.Host + r.URI
}

// RequestTime returns the elapsed time since the request began: a running
// value while still in flight, fixed once Finish has run.
func (r *Request) RequestTime() time.Duration {
	if r.finished {
		return r.finishTime.Sub(r.startTime)
	}
	return time.Since(r.startTime)
}

// GetSSLCertificate returns the peer's TLS certificate, or nil when the
// connection is plaintext or presented no client certificate.
func (r *Request) GetSSLCertificate() *x509.Certificate {
	return r.conn.peerCertificate()
}

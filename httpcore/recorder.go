package httpcore

// Recorder is the metrics sink a Connection reports lifecycle events to. A
// nil Recorder (the default) is a valid no-op: every call site on
// Connection nil-checks before invoking it, so metrics stay genuinely
// optional instead of needing a separate no-op implementation threaded
// through every constructor.
type Recorder interface {
	ConnectionAccepted()
	ConnectionClosed()
	RequestDispatched()
	RequestFinished()
	MalformedRequest()
}

func (c *Connection) record(fn func(Recorder)) {
	if c.rec != nil {
		fn(c.rec)
	}
}

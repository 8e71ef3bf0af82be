package httpcore

// finish is Request.Finish's entry point into the connection. Per spec.md
// §4.2: if the stream is idle (not writing) the finish procedure runs
// immediately; otherwise it is deferred until the in-flight write settles.
// Write is synchronous in this implementation, so "writing" is only ever
// true for the duration of a concurrent Write call on another goroutine;
// the retry through the reactor is the guard against that race, not the
// common path.
func (c *Connection) finish(req *Request) {
	c.mu.Lock()
	if c.req != req {
		c.mu.Unlock()
		panic("httpcore: Request.Finish called on a request that is no longer in flight")
	}
	c.requestFinished = true
	c.mu.Unlock()

	c.setState(Finishing)
	c.record(Recorder.RequestFinished)

	c.runFinishWhenIdle()
}

func (c *Connection) runFinishWhenIdle() {
	if c.stream.Writing() && c.re != nil {
		c.re.Post(c.runFinishWhenIdle)
		return
	}

	c.finishProcedure()
}

// finishProcedure clears the in-flight request and either closes the
// connection or loops back to AwaitingHeaders, per the keep-alive decision.
func (c *Connection) finishProcedure() {
	c.mu.Lock()
	req := c.req
	c.req = nil
	c.requestFinished = false
	c.mu.Unlock()

	if req == nil || shouldDisconnect(c.cfg, req) || c.stream.Closed() {
		c.close()
		return
	}

	c.armIdleTimer()
	c.readHeaders()
}

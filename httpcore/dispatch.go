package httpcore

func (c *Connection) dispatch(req *Request) {
	req.DiagnosticContext = c.dctxRoot.Clone(nil)

	c.mu.Lock()
	c.req = req
	c.requestFinished = false
	c.mu.Unlock()

	c.setState(Dispatched)
	c.record(Recorder.RequestDispatched)

	c.cfg.RequestCallback(req)
}

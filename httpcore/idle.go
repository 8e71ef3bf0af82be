package httpcore

// armIdleTimer (re)arms the idle-reap timer. Every I/O event re-arms it
// except when the connection is closing (spec.md §4.2: "every event first
// re-arms the idle timer, except when closing").
func (c *Connection) armIdleTimer() {
	c.cancelIdleTimer()

	timeout := c.cfg.NormalizedTimeout()
	if timeout == DisabledTimeout || c.re == nil {
		return
	}

	c.mu.Lock()
	c.idleTimer = c.re.ScheduleAfter(timeout, c.onIdleTimeout)
	c.mu.Unlock()
}

func (c *Connection) cancelIdleTimer() {
	c.mu.Lock()
	h := c.idleTimer
	c.idleTimer = nil
	c.mu.Unlock()

	if h != nil {
		h.Cancel()
	}
}

func (c *Connection) onIdleTimeout() {
	if c.stream.Closed() {
		return
	}
	if c.stream.Writing() {
		c.armIdleTimer()
		return
	}
	c.close()
}

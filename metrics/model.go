/*
MIT License

Copyright (c) 2019 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type recorder struct {
	reg *prometheus.Registry

	connectionsAccepted prometheus.Counter
	connectionsClosed   prometheus.Counter
	requestsDispatched  prometheus.Counter
	requestsFinished    prometheus.Counter
	requestsInFlight    prometheus.Gauge
	malformedRequests   prometheus.Counter
}

func newRecorder(namespace string) *recorder {
	reg := prometheus.NewRegistry()

	r := &recorder{
		reg: reg,
		connectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connections",
			Name:      "accepted_total",
			Help:      "Total number of connections accepted by the listener.",
		}),
		connectionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connections",
			Name:      "closed_total",
			Help:      "Total number of connections closed, keep-alive or otherwise.",
		}),
		requestsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "dispatched_total",
			Help:      "Total number of requests handed to the application callback.",
		}),
		requestsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "finished_total",
			Help:      "Total number of requests for which Finish was called.",
		}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "in_flight",
			Help:      "Number of requests dispatched but not yet finished.",
		}),
		malformedRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "malformed_total",
			Help:      "Total number of connections closed for sending a malformed request.",
		}),
	}

	reg.MustRegister(
		r.connectionsAccepted,
		r.connectionsClosed,
		r.requestsDispatched,
		r.requestsFinished,
		r.requestsInFlight,
		r.malformedRequests,
	)

	return r
}

func (r *recorder) Registry() *prometheus.Registry {
	return r.reg
}

func (r *recorder) ConnectionAccepted() {
	r.connectionsAccepted.Inc()
}

func (r *recorder) ConnectionClosed() {
	r.connectionsClosed.Inc()
}

func (r *recorder) RequestDispatched() {
	r.requestsDispatched.Inc()
	r.requestsInFlight.Inc()
}

func (r *recorder) RequestFinished() {
	r.requestsFinished.Inc()
	r.requestsInFlight.Dec()
}

func (r *recorder) MalformedRequest() {
	r.malformedRequests.Inc()
}
package netutil

import (
	"net"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Limiter is a pool of connection slots shared by several listeners
type Limiter struct {
	slots      chan struct{}
	concurrent prometheus.Gauge
	waiting    prometheus.Gauge
}

// NewLimiterWithMetrics creates a Limiter with n slots. With n set to 1 every
// connection is serviced to completion before the next one is accepted.
func NewLimiterWithMetrics(n int, maxConns, concurrent, waiting prometheus.Gauge) *Limiter {
	maxConns.Set(float64(n))

	return &Limiter{
		slots:      make(chan struct{}, n),
		concurrent: concurrent,
		waiting:    waiting,
	}
}

// take blocks until a slot is free or done is closed
func (l *Limiter) take(done <-chan struct{}) bool {
	l.waiting.Inc()
	defer l.waiting.Dec()

	select {
	case l.slots <- struct{}{}:
		l.concurrent.Inc()
		return true
	case <-done:
		return false
	}
}

func (l *Limiter) give() {
	<-l.slots
	l.concurrent.Dec()
}

// SharedLimitListener returns a Listener whose Accept waits for a free slot
// in limiter. The slot is held until the accepted connection is closed.
func SharedLimitListener(listener net.Listener, limiter *Limiter) net.Listener {
	return &limitListener{
		Listener: listener,
		limiter:  limiter,
		closed:   make(chan struct{}),
	}
}

type limitListener struct {
	net.Listener
	limiter   *Limiter
	closed    chan struct{}
	closeOnce sync.Once
}

func (l *limitListener) Accept() (net.Conn, error) {
	// a closed listener makes the Accept below fail at once
	slot := l.limiter.take(l.closed)

	conn, err := l.Listener.Accept()
	if err != nil {
		if slot {
			l.limiter.give()
		}
		return nil, err
	}

	if !slot {
		conn.Close()
		return nil, net.ErrClosed
	}

	return &limitConn{Conn: conn, limiter: l.limiter}, nil
}

func (l *limitListener) Close() error {
	err := l.Listener.Close()
	l.closeOnce.Do(func() { close(l.closed) })
	return err
}

type limitConn struct {
	net.Conn
	limiter     *Limiter
	releaseOnce sync.Once
}

func (c *limitConn) Close() error {
	err := c.Conn.Close()
	c.releaseOnce.Do(c.limiter.give)
	return err
}

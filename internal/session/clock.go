package session

import "time"

// Ticker is the periodic source that drives the rest countdown
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests substitute a clock whose ticks are fired by hand.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// RealClock is backed by time.NewTicker
type RealClock struct{}

func (RealClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

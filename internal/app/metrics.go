package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks host-side simulator activity. The console keeps its own
// pipeline counters; these cover what happens around it.
type Metrics struct {
	// Presentation
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64
	cellsSent    atomic.Uint64

	// Host input
	keyCount     atomic.Uint64
	keyIgnored   atomic.Uint64
	scancodeSent atomic.Uint64

	// Configuration
	reloads      atomic.Uint64
	reloadErrors atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records one Present call.
func (m *Metrics) RecordFrame(duration time.Duration, cells int) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.cellsSent.Add(uint64(cells))

	for {
		old := m.frameMaxNs.Load()
		if ns <= old {
			break
		}
		if m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordKey records a host key event and the scancodes it produced.
// A key with no scancodes counts as ignored.
func (m *Metrics) RecordKey(scancodes int) {
	m.keyCount.Add(1)
	if scancodes == 0 {
		m.keyIgnored.Add(1)
		return
	}
	m.scancodeSent.Add(uint64(scancodes))
}

// RecordReload records a configuration reload attempt.
func (m *Metrics) RecordReload(err error) {
	if err != nil {
		m.reloadErrors.Add(1)
		return
	}
	m.reloads.Add(1)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Frames       uint64
	FrameAvg     time.Duration
	FrameMax     time.Duration
	CellsSent    uint64
	Keys         uint64
	KeysIgnored  uint64
	Scancodes    uint64
	Reloads      uint64
	ReloadErrors uint64
	Uptime       time.Duration
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Frames:       m.frameCount.Load(),
		FrameMax:     time.Duration(m.frameMaxNs.Load()),
		CellsSent:    m.cellsSent.Load(),
		Keys:         m.keyCount.Load(),
		KeysIgnored:  m.keyIgnored.Load(),
		Scancodes:    m.scancodeSent.Load(),
		Reloads:      m.reloads.Load(),
		ReloadErrors: m.reloadErrors.Load(),
		Uptime:       time.Since(m.startTime),
	}
	if s.Frames > 0 {
		s.FrameAvg = time.Duration(m.frameTotalNs.Load() / int64(s.Frames))
	}
	return s
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer starts a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

package render

import (
	"log"
	"time"
)

// Stats is the host-supplied timing snapshot shown by the debug overlay.
// The renderer stores it verbatim; it has no side effect beyond display and
// observation.
type Stats struct {
	Time              float64 // seconds since host start
	FPS               float64
	FrameCallbackTime float64 // seconds spent in the host frame callback
}

// MemoryStats carries host memory counters for the overlay and telemetry.
type MemoryStats struct {
	HeapUsed     uint64
	HeapTotal    uint64
	ArrayBuffers uint64
}

// FlushObserver is notified after every presented frame with the flush
// duration. Flush time is observed, never enforced: the contract puts no
// bound on how long terminal output may take.
type FlushObserver interface {
	ObserveFlush(frame uint64, duration time.Duration)
}

// FlushLogger logs flush metrics to the provided logger.
type FlushLogger struct {
	logger *log.Logger
}

// NewFlushLogger creates a flush observer that logs durations.
func NewFlushLogger(l *log.Logger) *FlushLogger {
	if l == nil {
		l = log.Default()
	}
	return &FlushLogger{logger: l}
}

func (f *FlushLogger) ObserveFlush(frame uint64, duration time.Duration) {
	if f == nil || f.logger == nil {
		return
	}
	f.logger.Printf("flush frame=%d duration=%s", frame, duration)
}

package log

import (
	"os"
	"sync"
)

// FileLogger appends events to a .flog file. Each event is encoded first
// and written with a single Write call, so concurrent controllers never
// interleave partial records.
type FileLogger struct {
	mu      sync.Mutex
	f       *os.File
	closed  bool
	written int
	dropped int
}

// NewFileLogger opens path for appending, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{f: f}, nil
}

// Log writes one record. Failures are counted rather than returned; a
// broken trace file must not interrupt shielding.
func (l *FileLogger) Log(event Event) {
	rec, encErr := EncodeEvent(event)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if encErr != nil {
		l.dropped++
		return
	}
	if _, err := l.f.Write(rec); err != nil {
		l.dropped++
		return
	}
	l.written++
}

// Stats returns how many events were written and how many were lost to
// encoding or write errors.
func (l *FileLogger) Stats() (written, dropped int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.dropped
}

// Close closes the file. Further Log calls are ignored and a second Close
// returns nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.f.Close()
}

package diagnostics

import (
	"bytes"
	"io"
	"sync"
)

// Observer is told about every diagnostic a Stream or Handler sees.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveDiagnostic(category Category, suppressed bool)
}

// Stats summarises what a Stream let through.
type Stats struct {
	Emitted    int
	Suppressed int
	// SuppressedBy counts suppressed diagnostics per category.
	SuppressedBy map[Category]int
}

// Add merges other into a copy of s.
func (s Stats) Add(other Stats) Stats {
	out := Stats{
		Emitted:      s.Emitted + other.Emitted,
		Suppressed:   s.Suppressed + other.Suppressed,
		SuppressedBy: make(map[Category]int, len(s.SuppressedBy)+len(other.SuppressedBy)),
	}
	for c, n := range s.SuppressedBy {
		out.SuppressedBy[c] += n
	}
	for c, n := range other.SuppressedBy {
		out.SuppressedBy[c] += n
	}
	return out
}

// Stream filters line-oriented toolchain output. It is an io.Writer so it can be
// attached directly to a subprocess; partial lines are buffered until a newline
// or Flush.
type Stream struct {
	rules    *RuleSet
	out      io.Writer
	observer Observer

	mu              sync.Mutex
	pending         []byte
	dropSourceLines bool
	stats           Stats
}

// NewStream filters into out using rules. observer may be nil.
func NewStream(rules *RuleSet, out io.Writer, observer Observer) *Stream {
	return &Stream{
		rules:    rules,
		out:      out,
		observer: observer,
		stats:    Stats{SuppressedBy: map[Category]int{}},
	}
}

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, p...)
	for {
		i := bytes.IndexByte(s.pending, '\n')
		if i < 0 {
			break
		}
		line := string(s.pending[:i])
		s.pending = s.pending[i+1:]
		if err := s.line(line, true); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush processes a trailing line that had no newline.
func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	line := string(s.pending)
	s.pending = nil
	return s.line(line, false)
}

// Copy filters everything from r, then flushes. Lines have no length limit.
func (s *Stream) Copy(r io.Reader) error {
	if _, err := io.Copy(s, r); err != nil {
		return err
	}
	return s.Flush()
}

// Stats returns a snapshot of the counters.
func (s *Stream) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{}.Add(s.stats)
}

// line must be called with mu held. Emitted lines are written byte for byte,
// including a trailing carriage return; eol adds back the newline Write split on.
func (s *Stream) line(raw string, eol bool) error {
	if s.dropSourceLines && isWarningSource(raw) {
		// The source excerpt belongs to the warning that was just dropped.
		s.dropSourceLines = false
		return nil
	}
	s.dropSourceLines = false

	d := Classify(raw)
	suppressed := s.rules.Suppresses(d)
	if s.observer != nil {
		s.observer.ObserveDiagnostic(d.Category, suppressed)
	}
	if suppressed {
		s.stats.Suppressed++
		s.stats.SuppressedBy[d.Category]++
		s.dropSourceLines = d.Category != CategoryLogRecord
		return nil
	}
	s.stats.Emitted++
	if eol {
		raw += "\n"
	}
	_, err := io.WriteString(s.out, raw)
	return err
}

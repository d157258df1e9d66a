// FILE: vislog/src/internal/splitter/splitter.go
package splitter

import (
	"bytes"
	"unicode/utf8"

	"vislog/src/internal/core"
)

// State of the carry-over buffer between chunks
type State int

const (
	// Accumulating: fewer than two record starts seen, nothing to emit yet
	Accumulating State = iota
	// HasCompleteRecords: the last Feed emitted at least one record
	HasCompleteRecords
	// Flushed: end of input reached, the carry-over has been emitted
	Flushed
)

func (s State) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case HasCompleteRecords:
		return "has-complete-records"
	case Flushed:
		return "end-of-input-flush"
	default:
		return "unknown"
	}
}

var marker = []byte(core.RecordStart)

// Splitter turns a stream of arbitrary chunks into record blobs. Feed and
// Flush must be called from a single goroutine.
type Splitter struct {
	source string
	buf    []byte
	// offset of buf[0] in the stream, for error reporting
	offset int64
	// prefix of buf known not to contain a record start
	scanned int
	started bool
	state   State
	onLead  func(lead string)
}

// New creates a splitter. source names the input in errors.
func New(source string) *Splitter {
	return &Splitter{source: source}
}

// OnLeading registers a callback for non-blank text preceding the first record
func (s *Splitter) OnLeading(fn func(lead string)) {
	s.onLead = fn
}

// State reports the carry-over state after the last call
func (s *Splitter) State() State {
	return s.state
}

// Pending returns the number of carried-over bytes
func (s *Splitter) Pending() int {
	return len(s.buf)
}

// Feed appends chunk to the carry-over buffer and returns every record blob
// that is now known to be complete.
func (s *Splitter) Feed(chunk []byte) ([]string, error) {
	if s.state == Flushed {
		return nil, nil
	}
	s.buf = append(s.buf, chunk...)

	if !s.started {
		first := bytes.Index(s.buf[s.scanned:], marker)
		if first < 0 {
			// Keep the last bytes in case a marker straddles the next chunk
			s.scanned = max(0, len(s.buf)-len(marker)+1)
			s.state = Accumulating
			return nil, nil
		}
		first += s.scanned
		s.dropLeading(first)
		s.started = true
		s.scanned = len(marker)
	}

	// buf now starts with a record start; look for the next one after scanned
	var blobs []string
	start := 0
	for {
		next := bytes.Index(s.buf[s.scanned:], marker)
		if next < 0 {
			break
		}
		end := s.scanned + next
		blob, err := s.textAt(s.buf[start:end], s.offset+int64(start))
		if err != nil {
			return blobs, err
		}
		blobs = append(blobs, blob)
		start = end
		s.scanned = end + len(marker)
	}
	s.consume(start)
	s.scanned = max(len(marker), len(s.buf)-len(marker)+1)

	if len(blobs) > 0 {
		s.state = HasCompleteRecords
	} else {
		s.state = Accumulating
	}
	return blobs, nil
}

// Flush ends the input and returns the carry-over as the final record. Input
// that never contained a record start, even empty or blank input, is returned
// whole so that the parser reports it as malformed.
func (s *Splitter) Flush() (string, bool, error) {
	if s.state == Flushed {
		return "", false, nil
	}
	s.state = Flushed

	rest := s.buf
	s.buf = nil

	blob, err := s.textAt(rest, s.offset)
	if err != nil {
		return "", false, err
	}
	return blob, true, nil
}

// SplitAll splits a complete input in one pass and ends it
func (s *Splitter) SplitAll(data []byte) ([]string, error) {
	blobs, err := s.Feed(data)
	if err != nil {
		return nil, err
	}
	last, ok, err := s.Flush()
	if err != nil {
		return nil, err
	}
	if ok {
		blobs = append(blobs, last)
	}
	return blobs, nil
}

func (s *Splitter) dropLeading(n int) {
	if n == 0 {
		return
	}
	if s.onLead != nil {
		if lead := bytes.TrimSpace(s.buf[:n]); len(lead) > 0 {
			s.onLead(string(lead))
		}
	}
	s.consume(n)
}

func (s *Splitter) consume(n int) {
	if n == 0 {
		return
	}
	s.offset += int64(n)
	remaining := copy(s.buf, s.buf[n:])
	s.buf = s.buf[:remaining]
}

func (s *Splitter) textAt(b []byte, offset int64) (string, error) {
	if !utf8.Valid(b) {
		return "", &core.InputEncodingError{Source: s.source, Offset: offset + int64(invalidAt(b))}
	}
	return string(b), nil
}

func invalidAt(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}

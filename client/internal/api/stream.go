package api

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdai/zerocode/client/internal/types"
)

// ErrStreamConsumed is yielded when a stream is iterated a second time or
// after Close. Streams cannot be restarted; issue a new call instead.
var ErrStreamConsumed = errors.New("event stream already consumed")

// EventStream is the lazy, single-pass result of a streaming operation. It
// reads server-sent events from the response body only as the caller pulls
// them and ends when the server closes the connection.
type EventStream struct {
	body   io.ReadCloser
	cancel context.CancelFunc

	used      atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

func newEventStream(body io.ReadCloser, cancel context.CancelFunc) *EventStream {
	if cancel == nil {
		cancel = func() {}
	}
	return &EventStream{body: body, cancel: cancel}
}

// Events yields each event in arrival order. Iteration stops at end of stream,
// at the first read error (yielded once), or when the loop body breaks; in
// every case the underlying body is closed.
func (s *EventStream) Events() iter.Seq2[types.ServerSentEvent, error] {
	return func(yield func(types.ServerSentEvent, error) bool) {
		if !s.used.CompareAndSwap(false, true) {
			yield(types.ServerSentEvent{}, ErrStreamConsumed)
			return
		}
		defer func() { _ = s.Close() }()

		dec := newSSEDecoder(s.body)
		for {
			ev, err := dec.next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(types.ServerSentEvent{}, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Fragments yields only the data payload of each event.
func (s *EventStream) Fragments() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for ev, err := range s.Events() {
			if !yield(ev.Data, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the connection. It is safe to call more than once and from
// another goroutine to abort a blocked read.
func (s *EventStream) Close() error {
	s.closeOnce.Do(func() {
		s.used.Store(true)
		s.closeErr = s.body.Close()
		s.cancel()
	})
	return s.closeErr
}

// maxLineSize bounds a single event-stream line; generated files arrive as
// one data line per fragment.
const maxLineSize = 4 << 20

// sseDecoder parses the text/event-stream format. Lines end in CRLF, LF or
// a bare CR, and one leading byte-order mark is ignored.
type sseDecoder struct {
	sc        *bufio.Scanner
	pendingCR bool
	started   bool
}

func newSSEDecoder(r io.Reader) *sseDecoder {
	d := &sseDecoder{sc: bufio.NewScanner(r)}
	d.sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	d.sc.Split(d.splitLines)
	return d
}

// splitLines cuts at CR, LF or CRLF. A CR that ends the buffered data ends
// the line at once; an LF arriving first in the next read is then dropped
// so a CRLF split across reads is not taken for an empty line.
func (d *sseDecoder) splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if d.pendingCR && len(data) > 0 {
		d.pendingCR = false
		if data[0] == '\n' {
			return 1, nil, nil
		}
	}
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		d.pendingCR = !atEOF
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// next returns the next dispatched event, or io.EOF once the stream ends.
// Blocks that carry no data line (heartbeat comments, bare ids) are skipped.
func (d *sseDecoder) next() (types.ServerSentEvent, error) {
	var (
		ev       types.ServerSentEvent
		data     []string
		comments []string
	)
	dispatch := func() types.ServerSentEvent {
		ev.Data = strings.Join(data, "\n")
		ev.Comment = strings.Join(comments, "\n")
		return ev
	}

	for d.sc.Scan() {
		line := d.sc.Text()
		if !d.started {
			d.started = true
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if line == "" {
			if data != nil {
				return dispatch(), nil
			}
			ev, comments = types.ServerSentEvent{}, nil
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "":
			comments = append(comments, value)
		case "data":
			data = append(data, value)
		case "event":
			ev.Event = value
		case "id":
			ev.ID = value
		case "retry":
			if n, err := strconv.Atoi(value); err == nil {
				ev.Retry = n
			}
		}
	}
	if err := d.sc.Err(); err != nil {
		return types.ServerSentEvent{}, err
	}
	// an unterminated final block still carries its data
	if data != nil {
		return dispatch(), nil
	}
	return types.ServerSentEvent{}, io.EOF
}

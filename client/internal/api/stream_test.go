package api

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdai/zerocode/client/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, s *EventStream) []types.ServerSentEvent {
	t.Helper()
	var out []types.ServerSentEvent
	for ev, err := range s.Events() {
		require.NoError(t, err)
		out = append(out, ev)
	}
	return out
}

func TestDecoder_Fields(t *testing.T) {
	t.Parallel()
	raw := ": heartbeat\n\n" +
		"id: 1\nevent: chunk\ndata: <html>\ndata:  <body>\n\n" +
		"data:{\"d\":\"x\"}\r\nretry: 3000\r\n\r\n" +
		": note\ndata\n\n" +
		"event: done\n\n" +
		"data: tail"
	s := newEventStream(io.NopCloser(strings.NewReader(raw)), nil)

	got := collectEvents(t, s)
	require.Len(t, got, 4)

	assert.Equal(t, types.ServerSentEvent{ID: "1", Event: "chunk", Data: "<html>\n <body>"}, got[0])
	assert.Equal(t, types.ServerSentEvent{Data: `{"d":"x"}`, Retry: 3000}, got[1])
	assert.Equal(t, types.ServerSentEvent{Data: "", Comment: "note"}, got[2])
	assert.Equal(t, "tail", got[3].Data)
	assert.Empty(t, got[3].Event, "event name without data must not leak into the next event")
}

func TestDecoder_LineEndings(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
	}{
		{"lf", "data: a\n\ndata: b\n\n"},
		{"crlf", "data: a\r\n\r\ndata: b\r\n\r\n"},
		{"bare cr", "data: a\r\rdata: b\r\r"},
		{"mixed", "data: a\r\n\rdata: b\n\r\n"},
		{"leading bom", "\uFEFFdata: a\n\ndata: b\n\n"},
		{"bom before comment", "\uFEFF: hi\n\ndata: a\n\ndata: b\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newEventStream(io.NopCloser(strings.NewReader(tt.raw)), nil)
			assert.Equal(t, []string{"a", "b"}, fragments(t, s))
		})
	}
}

func TestDecoder_CRLFSplitAcrossReads(t *testing.T) {
	t.Parallel()
	r := io.MultiReader(
		strings.NewReader("data: a\r"),
		strings.NewReader("\ndata: b\r"),
		strings.NewReader("\n\r"),
		strings.NewReader("\n"),
	)
	s := newEventStream(io.NopCloser(r), nil)
	assert.Equal(t, []string{"a\nb"}, fragments(t, s))
}

func TestEventStream_ArrivalOrder(t *testing.T) {
	t.Parallel()
	pr, pw := io.Pipe()
	s := newEventStream(pr, nil)

	frags := []string{"<!DOCTYPE html>", "<h1>hi</h1>", "</html>"}
	next := make(chan struct{})
	go func() {
		for _, f := range frags {
			<-next
			_, _ = io.WriteString(pw, "data: "+f+"\n\n")
		}
		<-next
		_ = pw.Close()
	}()

	var got []string
	next <- struct{}{}
	for frag, err := range s.Fragments() {
		require.NoError(t, err)
		got = append(got, frag)
		// the next fragment is released only after this one was observed
		next <- struct{}{}
	}
	assert.Equal(t, frags, got)
}

func TestEventStream_SinglePass(t *testing.T) {
	t.Parallel()
	s := newEventStream(io.NopCloser(strings.NewReader("data: a\n\n")), nil)
	assert.Len(t, collectEvents(t, s), 1)

	var errs []error
	for _, err := range s.Events() {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrStreamConsumed)
}

func TestEventStream_BreakClosesBody(t *testing.T) {
	t.Parallel()
	body := &trackingBody{Reader: strings.NewReader("data: a\n\ndata: b\n\n")}
	canceled := false
	s := newEventStream(body, func() { canceled = true })

	for range s.Fragments() {
		break
	}
	assert.True(t, body.isClosed())
	assert.True(t, canceled)
	require.NoError(t, s.Close())
}

func TestEventStream_CloseBeforeIterate(t *testing.T) {
	t.Parallel()
	body := &trackingBody{Reader: strings.NewReader("data: a\n\n")}
	s := newEventStream(body, nil)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	for _, err := range s.Fragments() {
		assert.ErrorIs(t, err, ErrStreamConsumed)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestEventStream_ReadErrorYieldedOnce(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection reset")
	s := newEventStream(io.NopCloser(io.MultiReader(strings.NewReader("data: a\n\n"), failingReader{boom})), nil)

	var frags []string
	var errs []error
	for f, err := range s.Fragments() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		frags = append(frags, f)
	}
	assert.Equal(t, []string{"a"}, frags)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
}

func TestChatToGenCode_Request(t *testing.T) {
	t.Parallel()
	tr := &fakeTransport{stream: io.NopCloser(strings.NewReader("data: <p>ok</p>\n\n"))}

	s, err := ChatToGenCode(context.Background(), tr, types.ChatToGenCodeParams{AppID: 42, Message: "add a footer"})
	require.NoError(t, err)

	req := tr.last()
	assert.Equal(t, "chatToGenCode", req.Operation)
	assert.Equal(t, "/app/chat/gen/code", req.Path)
	assert.Equal(t, "42", req.Query.Get("appId"))
	assert.Equal(t, "add a footer", req.Query.Get("message"))
	assert.Equal(t, "text/event-stream", req.Header.Get("Accept"))
	assert.Nil(t, req.Body)

	var got []string
	for f, err := range s.Fragments() {
		require.NoError(t, err)
		got = append(got, f)
	}
	assert.Equal(t, []string{"<p>ok</p>"}, got)
}

func TestChatToGenCode_TimeoutLivesWithStream(t *testing.T) {
	t.Parallel()
	tr := &fakeTransport{stream: io.NopCloser(strings.NewReader(""))}

	s, err := ChatToGenCode(context.Background(), tr, types.ChatToGenCodeParams{AppID: 1, Message: "x"},
		WithTimeout(time.Minute), WithHeader("Accept", "*/*"))
	require.NoError(t, err)
	assert.Equal(t, "*/*", tr.last().Header.Get("Accept"))

	ctx := tr.ctx
	require.NoError(t, ctx.Err(), "stream context must outlive the call")
	require.NoError(t, s.Close())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestChatToGenCode_StreamError(t *testing.T) {
	t.Parallel()
	_, err := ChatToGenCode(context.Background(), blockingTransport{}, types.ChatToGenCodeParams{AppID: 1},
		WithTimeout(10*time.Millisecond))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func fragments(t *testing.T, s *EventStream) []string {
	t.Helper()
	var got []string
	for frag, err := range s.Fragments() {
		require.NoError(t, err)
		got = append(got, frag)
	}
	return got
}

package client

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding lists the encodings decompressTransport can decode, best first.
const acceptEncoding = "zstd, br, gzip"

// decompressTransport negotiates compressed responses and decodes them
// transparently. Setting Accept-Encoding ourselves disables net/http's
// built-in gzip handling, so all three encodings are handled here.
type decompressTransport struct{ base http.RoundTripper }

func (t *decompressTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		cloned := req.Clone(req.Context())
		cloned.Header.Set("Accept-Encoding", acceptEncoding)
		req = cloned
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	if enc == "" || enc == "identity" {
		return resp, nil
	}

	body, err := newDecoder(enc, resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	if body == nil {
		// unknown encoding: hand it over untouched
		return resp, nil
	}
	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

// newDecoder wraps rc for enc. It returns nil, nil for encodings it does not know.
func newDecoder(enc string, rc io.ReadCloser) (io.ReadCloser, error) {
	switch enc {
	case "zstd":
		d, err := zstd.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &decodedBody{Reader: d, src: rc, release: d.Close}, nil
	case "br":
		return &decodedBody{Reader: brotli.NewReader(rc), src: rc}, nil
	case "gzip":
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &decodedBody{Reader: gz, src: rc, release: func() { _ = gz.Close() }}, nil
	default:
		return nil, nil
	}
}

// decodedBody closes both the decoder and the underlying response body.
type decodedBody struct {
	io.Reader
	src     io.Closer
	release func()
}

func (b *decodedBody) Close() error {
	if b.release != nil {
		b.release()
		b.release = nil
	}
	err := b.src.Close()
	if errors.Is(err, http.ErrBodyReadAfterClose) {
		return nil
	}
	return err
}

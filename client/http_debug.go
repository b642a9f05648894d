package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// debugTransport logs every request/response dump through zerolog.
//
// Purpose:
//   - Troubleshoot backend communication (session cookies, malformed queries,
//     unexpected envelopes)
//   - Inspect exactly how parameters were flattened into the query string
//
// When to use:
//   - Set ZEROCODE_DEBUG=true or DEBUG=true, or pass WithDebugLogging(true)
//
// Security considerations:
//   - Dumps include cookies, login bodies and generated code
//
// Code generation streams are dumped without their body so the stream is
// still delivered incrementally.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	withBody := !isEventStream(resp)
	if respDump, err := httputil.DumpResponse(resp, withBody); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

func isEventStream(resp *http.Response) bool {
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream")
}

// debugLoggingRequested checks if HTTP debug logging should be enabled.
//
// Activation methods:
//   - ZEROCODE_DEBUG=true (zerocode-specific debug flag)
//   - DEBUG=true (general debug flag, common in development workflows)
//
// Returns true if either environment variable is set to "true" (case-sensitive).
func debugLoggingRequested() bool {
	return os.Getenv("ZEROCODE_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

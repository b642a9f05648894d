package client

import (
	"github.com/gdai/zerocode/client/internal/api"
	cerrors "github.com/gdai/zerocode/client/internal/errors"
)

// ClassifiedError is returned by the default transport for non-2xx statuses
// and network failures.
type ClassifiedError = cerrors.ClassifiedError

// ErrStreamConsumed is yielded when an EventStream is iterated twice.
var ErrStreamConsumed = api.ErrStreamConsumed

// IsIrrecoverable reports whether retrying err cannot help (4xx other than
// 408 and 429).
func IsIrrecoverable(err error) bool { return cerrors.IsIrrecoverable(err) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return cerrors.StatusCode(err) }

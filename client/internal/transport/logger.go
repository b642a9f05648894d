package transport

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// logAdapter routes resty's internal logging into zerolog.
type logAdapter struct{ l zerolog.Logger }

func (a logAdapter) Errorf(format string, v ...interface{}) {
	a.l.Error().Str("component", "resty").Msg(trim(format, v))
}

func (a logAdapter) Warnf(format string, v ...interface{}) {
	a.l.Warn().Str("component", "resty").Msg(trim(format, v))
}

func (a logAdapter) Debugf(format string, v ...interface{}) {
	a.l.Debug().Str("component", "resty").Msg(trim(format, v))
}

func trim(format string, v []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}

// Package datefmt renders backend timestamps for display using dayjs-style
// patterns (YYYY-MM-DD HH:mm:ss).
package datefmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// DateTimeLayout is the default pattern of FormatDateTime.
	DateTimeLayout = "YYYY-MM-DD HH:mm:ss"
	// DateLayout is the pattern of FormatDate.
	DateLayout = "YYYY-MM-DD"

	// Empty is returned for an empty timestamp.
	Empty = "-"
	// Invalid is returned when a timestamp cannot be parsed.
	Invalid = "Invalid Date"
)

// Formatter renders timestamps in a fixed location. Timestamps carrying no
// offset are read in that location as well.
type Formatter struct {
	loc *time.Location
}

// New returns a Formatter for loc; nil means time.Local.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc}
}

// FormatDateTime formats t with layout, or DateTimeLayout when none is given.
func (f *Formatter) FormatDateTime(t string, layout ...string) string {
	if t == "" {
		return Empty
	}
	pattern := DateTimeLayout
	if len(layout) > 0 && layout[0] != "" {
		pattern = layout[0]
	}
	trimmed := strings.TrimSpace(t)
	if trimmed == "" {
		return Invalid
	}
	ts, err := dateparse.ParseIn(trimmed, f.loc)
	if err != nil {
		return Invalid
	}
	return Format(ts.In(f.loc), pattern)
}

// FormatDate formats t as YYYY-MM-DD.
func (f *Formatter) FormatDate(t string) string {
	return f.FormatDateTime(t, DateLayout)
}

// FormatDateTime formats t in the local time zone.
func FormatDateTime(t string, layout ...string) string {
	return New(time.Local).FormatDateTime(t, layout...)
}

// FormatDate formats t as YYYY-MM-DD in the local time zone.
func FormatDate(t string) string {
	return New(time.Local).FormatDate(t)
}

// tokens is ordered so longer tokens match before their prefixes.
var tokens = []string{"YYYY", "YY", "SSS", "MM", "M", "DD", "D", "HH", "H", "hh", "h", "mm", "m", "ss", "s", "ZZ", "Z", "A", "a"}

// Format renders t with a dayjs pattern. Text inside [brackets] is copied
// verbatim; characters that are not tokens pass through.
func Format(t time.Time, pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			if end := strings.IndexByte(pattern[i+1:], ']'); end >= 0 {
				b.WriteString(pattern[i+1 : i+1+end])
				i += end + 2
				continue
			}
		}
		matched := false
		for _, tok := range tokens {
			if strings.HasPrefix(pattern[i:], tok) {
				b.WriteString(render(t, tok))
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

func render(t time.Time, tok string) string {
	switch tok {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "M":
		return fmt.Sprint(int(t.Month()))
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "D":
		return fmt.Sprint(t.Day())
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "H":
		return fmt.Sprint(t.Hour())
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "h":
		return fmt.Sprint(hour12(t))
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "m":
		return fmt.Sprint(t.Minute())
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "s":
		return fmt.Sprint(t.Second())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "SSS":
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "Z":
		return t.Format("-07:00")
	case "ZZ":
		return t.Format("-0700")
	}
	return tok
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

package scale

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/stackchart/pkg/data"
)

// DefaultMask is the date mask of time scales without one.
const DefaultMask = "YYYY-MM-DD"

var maskTokens = []struct {
	token, layout string
}{
	{"YYYY", "2006"},
	{"SSS", "000"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
	{"A", "PM"},
	{"a", "pm"},
}

// MaskLayout converts a date mask such as "YYYY-MM-DD HH:mm" into a Go time
// layout. Milliseconds ("SSS") must follow a '.' or ','.
func MaskLayout(mask string) string {
	var b strings.Builder
	for i := 0; i < len(mask); {
		matched := false
		for _, t := range maskTokens {
			if strings.HasPrefix(mask[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(mask[i])
			i++
		}
	}
	return b.String()
}

// FormatMask formats a timestamp in milliseconds (or a time.Time) with mask.
func FormatMask(v any, mask string) string {
	t, ok := toTime(v)
	if !ok {
		return data.String(v)
	}
	if mask == "" {
		mask = DefaultMask
	}
	return t.Format(MaskLayout(mask))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006-01",
	"2006",
}

// Timestamp converts a date value to milliseconds since the Unix epoch.
// Numbers are taken as milliseconds already; strings are parsed with a set
// of common layouts in UTC.
func Timestamp(v any) (float64, bool) {
	switch x := v.(type) {
	case time.Time:
		return float64(x.UnixMilli()), true
	case *time.Time:
		if x == nil {
			return 0, false
		}
		return float64(x.UnixMilli()), true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return float64(t.UnixMilli()), true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return 0, false
	}
	return data.ToFloat(v)
}

func toTime(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t.UTC(), true
	}
	ms, ok := Timestamp(v)
	if !ok || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

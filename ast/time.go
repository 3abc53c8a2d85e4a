// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xhit/go-str2duration/v2"
)

// Timestamps and durations have no JSON type of their own. They are stored
// as strings: timestamps in RFC 3339 format, durations in ISO 8601 format.

// TimeValue returns a string value holding t in RFC 3339 format, in UTC.
func TimeValue(t time.Time) *String { return &String{Value: t.UTC().Format(time.RFC3339Nano)} }

// DurationValue returns a string value holding d in ISO 8601 format, for
// example "PT1H30M" or "PT0.25S".
func DurationValue(d time.Duration) *String { return &String{Value: formatDuration(d)} }

// Time parses the value of s as an RFC 3339 timestamp.
func (s *String) Time() (time.Time, error) { return time.Parse(time.RFC3339Nano, s.Value) }

// Duration parses the value of s as a duration. It accepts ISO 8601 format
// ("P2DT3H", "PT-1.5S"), and the format of time.ParseDuration extended with
// days and weeks ("1d12h", "90m").
func (s *String) Duration() (time.Duration, error) {
	if isISODuration(s.Value) {
		return parseISODuration(s.Value)
	}
	return str2duration.ParseDuration(s.Value)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	var sb strings.Builder
	sb.WriteString("PT")
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	if h != 0 {
		fmt.Fprintf(&sb, "%dH", int64(h))
	}
	if m != 0 {
		fmt.Fprintf(&sb, "%dM", int64(m))
	}
	if d != 0 {
		if d < 0 {
			sb.WriteByte('-')
			d = -d
		}
		sb.WriteString(strconv.FormatInt(int64(d/time.Second), 10))
		if f := d % time.Second; f != 0 {
			sb.WriteString(strings.TrimRight(fmt.Sprintf(".%09d", int64(f)), "0"))
		}
		sb.WriteByte('S')
	}
	return sb.String()
}

func isISODuration(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return s != "" && (s[0] == 'P' || s[0] == 'p')
}

// parseISODuration parses durations of the form [-]PnDTnHnMn.nS, where each
// component is optional but at least one is present, and each number may
// have its own sign.
func parseISODuration(s string) (time.Duration, error) {
	bad := func() (time.Duration, error) { return 0, fmt.Errorf("invalid duration %q", s) }

	rest := strings.ToUpper(s)
	neg := false
	if rest[0] == '-' || rest[0] == '+' {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	rest = rest[1:] // P

	var d time.Duration
	var inTime, found bool
	for rest != "" {
		if rest[0] == 'T' {
			if inTime || len(rest) == 1 {
				return bad()
			}
			inTime, rest = true, rest[1:]
			continue
		}
		i := strings.IndexAny(rest, "DHMS")
		if i <= 0 {
			return bad()
		}
		var unit time.Duration
		switch c := rest[i]; {
		case c == 'D' && !inTime:
			unit = 24 * time.Hour
		case c == 'H' && inTime:
			unit = time.Hour
		case c == 'M' && inTime:
			unit = time.Minute
		case c == 'S' && inTime:
			unit = time.Second
		default:
			return bad()
		}
		v, err := decimal.NewFromString(rest[:i])
		if err != nil {
			return bad()
		}
		d += time.Duration(v.Mul(decimal.NewFromInt(int64(unit))).IntPart())
		rest, found = rest[i+1:], true
	}
	if !found {
		return bad()
	}
	if neg {
		d = -d
	}
	return d, nil
}

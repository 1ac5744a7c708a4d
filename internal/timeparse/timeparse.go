// Package timeparse resolves scheduling expressions to calendar days.
//
// Parsing is layered:
//  1. Keywords (today, tomorrow)
//  2. Compact day offsets (+1d, +2w)
//  3. Absolute dates (2025-07-01)
//  4. Natural language ("friday", "next tuesday") via olebedev/when
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// compactOffsetRe matches compact offsets in days or weeks: +2d, 1w, -1d.
var compactOffsetRe = regexp.MustCompile(`^([+-]?)(\d+)([dw])$`)

var nlParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseDay resolves expr to a calendar day relative to now. The returned
// time carries now's location with the clock zeroed out by callers that
// only care about the date.
func ParseDay(expr string, now time.Time) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}

	switch strings.ToLower(expr) {
	case "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	if m := compactOffsetRe.FindStringSubmatch(expr); m != nil {
		amount, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid offset amount: %q", m[2])
		}
		if m[1] == "-" {
			amount = -amount
		}
		if m[3] == "w" {
			amount *= 7
		}
		return now.AddDate(0, 0, amount), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", expr, now.Location()); err == nil {
		return t, nil
	}

	r, err := nlParser.Parse(expr, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date expression %q: %w", expr, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("unrecognized date expression %q", expr)
	}
	return r.Time, nil
}

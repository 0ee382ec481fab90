package types

import (
	"errors"
	"time"
)

// Range is a named reporting window relative to the current date.
type Range string

const (
	RangeMonth    Range = "month"
	RangeQuarter  Range = "quarter"
	Range3Months  Range = "3months"
	defaultWindow       = RangeMonth
)

var (
	ErrInvalidRange   = errors.New("invalid range, use 'month', 'quarter' or '3months'")
	ErrWindowInverted = errors.New("the from date must not be after the to date")
)

// Window is an inclusive date interval. A zero bound is open.
type Window struct {
	From Date
	To   Date
}

// ResolveWindow turns the range keyword and the optional from/to query
// values into a Window.
//
// from and to override the range. When only one of them is set, the
// window is open on the other side. Without either, "month" covers the
// calendar month of now and "quarter"/"3months" covers the current
// month and the two before it.
func ResolveWindow(r, from, to string, now time.Time) (Window, error) {
	if r == "" {
		r = string(defaultWindow)
	}

	switch Range(r) {
	case RangeMonth, RangeQuarter, Range3Months:
	default:
		return Window{}, ErrInvalidRange
	}

	var w Window
	var err error

	if from != "" {
		if w.From, err = ParseDate(from); err != nil {
			return Window{}, err
		}
	}

	if to != "" {
		if w.To, err = ParseDate(to); err != nil {
			return Window{}, err
		}
	}

	if !w.From.IsZero() && !w.To.IsZero() && w.From.After(w.To) {
		return Window{}, ErrWindowInverted
	}

	if from != "" || to != "" {
		return w, nil
	}

	current := MonthOf(now)
	if Range(r) == RangeMonth {
		return Window{From: current.FirstDay(), To: current.LastDay()}, nil
	}

	return Window{From: current.AddDate(0, -2).FirstDay(), To: current.LastDay()}, nil
}

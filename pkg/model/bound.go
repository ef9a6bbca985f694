package model

import (
	"fmt"
	"time"
)

// Bound is a display-only range limit. Number fields use the numeric form and
// date fields the date form; the validation engine never enforces bounds,
// range checks belong to the input widget.
type Bound struct {
	Number *float64   `json:"number,omitempty" yaml:"number,omitempty"`
	Date   *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// NumberBound builds a numeric bound.
func NumberBound(value float64) *Bound {
	return &Bound{Number: &value}
}

// DateBound builds a date bound.
func DateBound(value time.Time) *Bound {
	return &Bound{Date: &value}
}

// YearsAgo returns now shifted back by the given number of years. Signup
// forms use it to bound birth dates (at least 18, at most 120 years ago).
func YearsAgo(now time.Time, years int) time.Time {
	return now.AddDate(-years, 0, 0)
}

// IsNumber reports whether the bound carries a numeric limit.
func (b *Bound) IsNumber() bool {
	return b != nil && b.Number != nil
}

// IsDate reports whether the bound carries a date limit.
func (b *Bound) IsDate() bool {
	return b != nil && b.Date != nil
}

func (b *Bound) String() string {
	switch {
	case b.IsNumber():
		return fmt.Sprint(*b.Number)
	case b.IsDate():
		return b.Date.Format(time.DateOnly)
	default:
		return ""
	}
}

func (b *Bound) clone() *Bound {
	if b == nil {
		return nil
	}
	out := &Bound{}
	if b.Number != nil {
		value := *b.Number
		out.Number = &value
	}
	if b.Date != nil {
		value := *b.Date
		out.Date = &value
	}
	return out
}

package core

import (
	"fmt"
	"time"
)

const nanosPerSec = int64(time.Second)

// Duration mirrors the server's {secs, nanos} duration encoding.
type Duration struct {
	Secs  int64 `json:"secs"`
	Nanos int64 `json:"nanos"`
}

// NewDuration creates a normalized duration.
func NewDuration(secs, nanos int64) Duration {
	d := Duration{Secs: secs, Nanos: nanos}
	d.Normalize()
	return d
}

// FromStd converts a time.Duration.
func FromStd(d time.Duration) Duration {
	return NewDuration(0, int64(d))
}

// Normalize carries whole seconds out of Nanos.
func (d *Duration) Normalize() {
	if d.Nanos >= nanosPerSec {
		d.Secs += d.Nanos / nanosPerSec
		d.Nanos %= nanosPerSec
	}
}

// TotalNanos returns the duration in nanoseconds.
func (d Duration) TotalNanos() int64 {
	return d.Secs*nanosPerSec + d.Nanos
}

// Seconds returns the duration in fractional seconds.
func (d Duration) Seconds() float64 {
	return float64(d.Secs) + float64(d.Nanos)/float64(nanosPerSec)
}

// Std converts to time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.TotalNanos())
}

// IsZero reports whether the duration is empty.
func (d Duration) IsZero() bool {
	return d.Secs == 0 && d.Nanos == 0
}

// Cmp returns -1, 0 or 1 comparing d with other.
func (d Duration) Cmp(other Duration) int {
	a, b := d.TotalNanos(), other.TotalNanos()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FromPercent returns the position at percent (0..1) of d.
func (d Duration) FromPercent(percent float64) Duration {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	pos := int64(float64(d.TotalNanos()) * percent)
	return NewDuration(pos/nanosPerSec, pos%nanosPerSec)
}

// Format renders the duration as m:ss, or "-" when zero.
func (d Duration) Format() string {
	minutes := d.Secs / 60
	seconds := d.Secs % 60
	if minutes == 0 && seconds == 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func (d Duration) String() string {
	return d.Format()
}

package services

import (
	"fmt"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"
)

// Clock converts wall-clock deadline input to absolute instants and back,
// always in the platform's single fixed reference timezone. All deadline
// comparisons go through instants produced here; no call site does its own
// offset arithmetic.
type Clock struct {
	loc *time.Location
}

const wallClockLayout = "2006-01-02T15:04"

var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func NewClock(offsetMinutes int) *Clock {
	name := fmt.Sprintf("UTC%+d:%02d", offsetMinutes/60, abs(offsetMinutes%60))
	return &Clock{loc: time.FixedZone(name, offsetMinutes*60)}
}

// Resolve parses a timezone-less wall-clock value as local time in the
// reference zone and returns the absolute instant.
func (c *Clock) Resolve(wallClock string) (time.Time, error) {
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, wallClock, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, models.ErrValidation(fmt.Sprintf("invalid deadline %q, expected YYYY-MM-DDTHH:MM", wallClock))
}

// Display renders an instant as the reference-zone wall clock, the inverse
// of Resolve.
func (c *Clock) Display(t time.Time) string {
	return t.In(c.loc).Format(wallClockLayout)
}

// Now returns the current instant in the reference zone.
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// DateKey buckets an instant into a reference-zone calendar day.
func (c *Clock) DateKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

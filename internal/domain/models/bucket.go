// internal/domain/models/bucket.go
package models

import "time"

// TimeTag is one of the two reporting slots of a day.
type TimeTag int

const (
	Morning TimeTag = iota
	Evening
)

// Slot returns the reply-table key for the tag ("morning" or "evening").
func (t TimeTag) Slot() string {
	if t == Evening {
		return "evening"
	}
	return "morning"
}

func (t TimeTag) String() string { return t.Slot() }

// Bucket identifies one reporting slot: a date label such as "5/10" plus a
// time tag. Two buckets are equal iff both fields are equal; the label is
// compared as text, never as a number.
type Bucket struct {
	DateLabel string
	Tag       TimeTag
}

// Resolution is the result of mapping a message timestamp to its bucket.
type Resolution struct {
	Now         time.Time // the timestamp in the experiment location
	LogicalDate time.Time // the day the report counts toward
	Bucket      Bucket
	Retroactive bool // true when an early-morning message reports on the previous evening
}

// CalendarDate renders the logical date as YYYY-MM-DD, the reply table key.
func (r Resolution) CalendarDate() string {
	return r.LogicalDate.Format("2006-01-02")
}

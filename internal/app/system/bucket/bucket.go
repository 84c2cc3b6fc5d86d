// internal/app/system/bucket/bucket.go

// Package bucket maps a message timestamp to the reporting slot it counts
// toward.
//
// The day is split into three half-open intervals of local hours in the
// experiment location:
//
//	[0, 9)   previous day, evening (a message sent after midnight reports on the night before)
//	[9, 21)  same day, morning
//	[21, 24) same day, evening
//
// All calendar arithmetic happens in the supplied location, never in the
// process-local zone.
package bucket

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/progressrelay/internal/domain/models"
)

const (
	morningStartHour = 9
	eveningStartHour = 21
)

// Resolve returns the bucket for now as seen in loc.
func Resolve(now time.Time, loc *time.Location) models.Resolution {
	local := now.In(loc)
	res := models.Resolution{Now: local, LogicalDate: local}

	switch h := local.Hour(); {
	case h < morningStartHour:
		res.LogicalDate = local.AddDate(0, 0, -1)
		res.Bucket.Tag = models.Evening
		res.Retroactive = true
	case h < eveningStartHour:
		res.Bucket.Tag = models.Morning
	default:
		res.Bucket.Tag = models.Evening
	}

	res.Bucket.DateLabel = Label(res.LogicalDate)
	return res
}

// Label renders t as "M/D" with no leading zeros, e.g. "5/8".
func Label(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

// ParseLabel splits a "M/D" label into month and day. Surrounding whitespace
// is ignored; anything else that is not two plain integers fails.
func ParseLabel(label string) (month, day int, ok bool) {
	m, d, found := strings.Cut(strings.TrimSpace(label), "/")
	if !found {
		return 0, 0, false
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	day, err = strconv.Atoi(d)
	if err != nil || day < 1 || day > 31 {
		return 0, 0, false
	}
	return month, day, true
}

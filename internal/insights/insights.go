// Package insights buckets receipt spending into fixed-width time
// series for charting. All functions are pure: they take a snapshot of
// records plus an explicit "now" and return freshly built values.
package insights

import (
	"sort"
	"time"
)

// Record is the slice of a receipt the aggregator needs: when it
// happened, how much it cost in cents, and its category label.
// Records with a zero Date are excluded from every aggregation.
type Record struct {
	Date     time.Time
	Total    int
	Category string
}

// SpendPoint is one chart bucket: the bucket start (midnight UTC of
// the day, or of the Sunday opening the week) plus the summed spend in
// cents. Buckets with no receipts still appear with a zero amount so
// the series stays contiguous.
type SpendPoint struct {
	BucketStart time.Time `json:"bucket_start"`
	Amount      int       `json:"amount"`
}

// Summary pairs a window total with the per-bucket average, in cents.
type Summary struct {
	Total   int     `json:"total"`
	Average float64 `json:"average"`
}

// CategoryTotal is the spend attributed to one category label.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

// Daily returns one point per calendar day for the last days days
// ending today, oldest first. The result always has exactly days
// points regardless of receipt density.
func Daily(records []Record, days int, now time.Time) []SpendPoint {
	return series(records, days, now, startOfDay, func(t time.Time, n int) time.Time {
		return t.AddDate(0, 0, n)
	})
}

// Weekly returns one point per calendar week for the last weeks weeks
// ending with the current week, oldest first. Weeks start on Sunday.
func Weekly(records []Record, weeks int, now time.Time) []SpendPoint {
	return series(records, weeks, now, startOfWeek, func(t time.Time, n int) time.Time {
		return t.AddDate(0, 0, 7*n)
	})
}

// Summarize derives the window total and per-bucket average from an
// emitted series. An empty series has a zero average.
func Summarize(points []SpendPoint) Summary {
	var total int
	for _, p := range points {
		total += p.Amount
	}
	s := Summary{Total: total}
	if len(points) > 0 {
		s.Average = float64(total) / float64(len(points))
	}
	return s
}

// ByCategory sums spend per category over the last days days ending
// today, largest first. Ties break on the label so output is stable.
func ByCategory(records []Record, days int, now time.Time) []CategoryTotal {
	if days <= 0 {
		return []CategoryTotal{}
	}
	end := startOfDay(now)
	start := end.AddDate(0, 0, -(days - 1))

	totals := make(map[string]int)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		day := startOfDay(r.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		label := r.Category
		if label == "" {
			label = "Other"
		}
		totals[label] += r.Total
	}

	out := make([]CategoryTotal, 0, len(totals))
	for label, amount := range totals {
		out = append(out, CategoryTotal{Category: label, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// series is the shared bucketing algorithm: filter records to the
// window, sum totals per bucket, then emit every bucket in
// chronological order with zero gap-fill.
func series(records []Record, buckets int, now time.Time, bucketOf func(time.Time) time.Time, step func(time.Time, int) time.Time) []SpendPoint {
	if buckets <= 0 {
		return []SpendPoint{}
	}
	end := bucketOf(now)
	start := step(end, -(buckets - 1))

	totals := make(map[time.Time]int)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		b := bucketOf(r.Date)
		if b.Before(start) || b.After(end) {
			continue
		}
		totals[b] += r.Total
	}

	points := make([]SpendPoint, 0, buckets)
	for i := 0; i < buckets; i++ {
		b := step(start, i)
		points = append(points, SpendPoint{BucketStart: b, Amount: totals[b]})
	}
	return points
}

// startOfDay maps any instant to midnight UTC of its wall-clock date.
// Receipt dates carry no meaningful time of day, so UTC midnight is
// the reference calendar for every bucket key.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek maps any instant to midnight UTC of its week's Sunday.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

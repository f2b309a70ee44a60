// internal/service/report/filter.go
package report

import (
	"strings"
	"time"

	"llamacrm-service/internal/domain/lead"
)

// DateRange selects the window a dashboard view looks at.
type DateRange string

const (
	Range7Days  DateRange = "7days"
	RangeMonth  DateRange = "month"
	RangeAll    DateRange = "all"
	RangeCustom DateRange = "custom"
)

// FilterByRange narrows leads to the requested window by created_at.
// Unknown range values behave like "all": the filter fails open and
// never hides data.
//
//   - 7days: trailing 7×24h from now, inclusive at the exact boundary.
//   - month: current calendar month and year.
//   - custom: [start 00:00:00, end 23:59:59.999999999] inclusive, with
//     start/end as YYYY-MM-DD; an unparseable bound falls back to all.
//   - all: identity.
func FilterByRange(leads []lead.Lead, r DateRange, start, end string) []lead.Lead {
	return filterByRangeAt(leads, r, start, end, time.Now())
}

func filterByRangeAt(leads []lead.Lead, r DateRange, start, end string, now time.Time) []lead.Lead {
	switch r {
	case Range7Days:
		cutoff := now.Add(-7 * 24 * time.Hour)
		return filter(leads, func(l lead.Lead) bool {
			return !l.CreatedAt.Before(cutoff)
		})

	case RangeMonth:
		return filter(leads, func(l lead.Lead) bool {
			return l.CreatedAt.Month() == now.Month() && l.CreatedAt.Year() == now.Year()
		})

	case RangeCustom:
		startDay, err1 := time.ParseInLocation("2006-01-02", start, time.Local)
		endDay, err2 := time.ParseInLocation("2006-01-02", end, time.Local)
		if err1 != nil || err2 != nil {
			return leads
		}
		windowEnd := endDay.AddDate(0, 0, 1)
		return filter(leads, func(l lead.Lead) bool {
			return !l.CreatedAt.Before(startDay) && l.CreatedAt.Before(windowEnd)
		})

	default:
		return leads
	}
}

// Search keeps leads whose name or email contains the query,
// case-insensitive. An empty query matches everything; a lead without
// an email simply cannot match on that field.
func Search(leads []lead.Lead, query string) []lead.Lead {
	if query == "" {
		return leads
	}

	q := strings.ToLower(query)
	return filter(leads, func(l lead.Lead) bool {
		if strings.Contains(strings.ToLower(l.Name), q) {
			return true
		}
		return l.Email != "" && strings.Contains(strings.ToLower(l.Email), q)
	})
}

func filter(leads []lead.Lead, keep func(lead.Lead) bool) []lead.Lead {
	out := make([]lead.Lead, 0, len(leads))
	for _, l := range leads {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

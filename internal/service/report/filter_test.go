package report

import (
	"testing"
	"time"

	"llamacrm-service/internal/domain/lead"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leadAt(id string, created time.Time) lead.Lead {
	return lead.Lead{ID: id, CreatedAt: created}
}

func TestFilterByRange_7DaysInclusiveBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	leads := []lead.Lead{
		leadAt("exact", now.Add(-7*24*time.Hour)),
		leadAt("inside", now.Add(-6*24*time.Hour)),
		leadAt("outside", now.Add(-7*24*time.Hour-time.Second)),
	}

	got := filterByRangeAt(leads, Range7Days, "", "", now)

	require.Len(t, got, 2)
	assert.Equal(t, "exact", got[0].ID)
	assert.Equal(t, "inside", got[1].ID)
}

func TestFilterByRange_MonthExcludesPreviousMonth(t *testing.T) {
	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.Local)
	leads := []lead.Lead{
		// Within 30 days of now but in February: must be excluded.
		leadAt("prev-month", time.Date(2026, 2, 20, 9, 0, 0, 0, time.Local)),
		leadAt("this-month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)),
		// Same month last year: excluded.
		leadAt("last-year", time.Date(2025, 3, 5, 9, 0, 0, 0, time.Local)),
	}

	got := filterByRangeAt(leads, RangeMonth, "", "", now)

	require.Len(t, got, 1)
	assert.Equal(t, "this-month", got[0].ID)
}

func TestFilterByRange_CustomInclusive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	leads := []lead.Lead{
		leadAt("start-midnight", time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)),
		leadAt("end-of-day", time.Date(2026, 3, 2, 23, 59, 59, int(999*time.Millisecond), time.Local)),
		leadAt("before", time.Date(2026, 2, 28, 23, 59, 59, 0, time.Local)),
		leadAt("after", time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local)),
	}

	got := filterByRangeAt(leads, RangeCustom, "2026-03-01", "2026-03-02", now)

	require.Len(t, got, 2)
	assert.Equal(t, "start-midnight", got[0].ID)
	assert.Equal(t, "end-of-day", got[1].ID)
}

func TestFilterByRange_CustomBadDatesFailOpen(t *testing.T) {
	now := time.Now()
	leads := []lead.Lead{leadAt("a", now), leadAt("b", now.AddDate(-1, 0, 0))}

	got := filterByRangeAt(leads, RangeCustom, "not-a-date", "2026-03-02", now)

	assert.Len(t, got, 2)
}

func TestFilterByRange_UnknownRangeIsAll(t *testing.T) {
	now := time.Now()
	leads := []lead.Lead{leadAt("a", now), leadAt("b", now.AddDate(-2, 0, 0))}

	got := filterByRangeAt(leads, DateRange("bogus"), "", "", now)

	assert.Len(t, got, 2)
}

func TestSearch(t *testing.T) {
	leads := []lead.Lead{
		{ID: "1", Name: "María González", Email: "maria@example.com"},
		{ID: "2", Name: "Pedro Ruiz"},
		{ID: "3", Name: "Luz", Email: "luz.perez@example.com"},
	}

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Len(t, Search(leads, ""), 3)
	})

	t.Run("case-insensitive name match", func(t *testing.T) {
		got := Search(leads, "pedro")
		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("email match", func(t *testing.T) {
		got := Search(leads, "PEREZ")
		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})

	t.Run("missing email is not a match on that field", func(t *testing.T) {
		got := Search(leads, "example.com")
		require.Len(t, got, 2)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Search(leads, "zzz"))
	})
}

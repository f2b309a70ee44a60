// internal/service/report/aggregate.go
package report

import (
	"sort"

	"llamacrm-service/internal/domain/lead"
	"llamacrm-service/internal/domain/report"
)

// UnassignedName is the sentinel bucket for leads without a setter or
// closer. Wire value matches the dashboard label.
const UnassignedName = "Sin Asignar"

// ComputeStats derives the headline KPIs from an already date-filtered
// lead set. The conversion denominator is guarded so an empty set
// yields 0, never NaN.
func ComputeStats(leads []lead.Lead) report.DashboardStats {
	stats := report.DashboardStats{TotalLeads: len(leads)}

	bought := 0
	for _, l := range leads {
		stats.MonthlySales += l.CollectedAmount
		stats.TotalCommissions += l.SetterCommission + l.CloserCommission
		stats.GrossRevenue += l.Revenue
		if l.Bought {
			bought++
		}
	}

	denom := len(leads)
	if denom < 1 {
		denom = 1
	}
	stats.ConversionRate = float64(bought) / float64(denom) * 100

	return stats
}

// GroupBySetter groups leads by setter name, crediting each group with
// the setter's own commission only. Empty names collapse into the
// single unassigned bucket. Sorted by commissions descending.
func GroupBySetter(leads []lead.Lead) []report.PersonnelStats {
	return groupByPersonnel(leads,
		func(l lead.Lead) string { return l.Setter },
		func(l lead.Lead) float64 { return l.SetterCommission },
	)
}

// GroupByCloser is the closer-keyed counterpart of GroupBySetter.
func GroupByCloser(leads []lead.Lead) []report.PersonnelStats {
	return groupByPersonnel(leads,
		func(l lead.Lead) string { return l.Closer },
		func(l lead.Lead) float64 { return l.CloserCommission },
	)
}

func groupByPersonnel(leads []lead.Lead, nameOf func(lead.Lead) string, commissionOf func(lead.Lead) float64) []report.PersonnelStats {
	groups := make(map[string]*report.PersonnelStats)

	for _, l := range leads {
		name := nameOf(l)
		if name == "" {
			name = UnassignedName
		}

		g, ok := groups[name]
		if !ok {
			g = &report.PersonnelStats{Name: name}
			groups[name] = g
		}

		g.Count++
		if l.Bought {
			g.Sales++
		}
		g.Commissions += commissionOf(l)
	}

	out := make([]report.PersonnelStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Commissions != out[j].Commissions {
			return out[i].Commissions > out[j].Commissions
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// BreakdownByOrigin computes count, sales and conversion for every
// enumerated origin, then drops channels with zero leads from the
// result. Sorted by count descending.
func BreakdownByOrigin(leads []lead.Lead) []report.OriginStats {
	all := make([]report.OriginStats, 0, len(lead.AllOrigins()))

	for _, origin := range lead.AllOrigins() {
		stat := report.OriginStats{Name: string(origin)}
		for _, l := range leads {
			if l.Origin != origin {
				continue
			}
			stat.Count++
			if l.Bought {
				stat.Sales++
			}
		}
		if stat.Count > 0 {
			stat.Conversion = float64(stat.Sales) / float64(stat.Count) * 100
		}
		all = append(all, stat)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Count > all[j].Count
	})

	visible := make([]report.OriginStats, 0, len(all))
	for _, stat := range all {
		if stat.Count > 0 {
			visible = append(visible, stat)
		}
	}

	return visible
}

// BuildReport assembles the full financial roll-up over a filtered
// lead set. Every ratio guards its denominator and yields 0 instead of
// NaN; the operating margin passes through unclamped.
func BuildReport(leads []lead.Lead) report.Report {
	r := report.Report{TotalLeads: len(leads)}

	for _, l := range leads {
		r.TotalRevenue += l.Revenue
		r.TotalCollected += l.CollectedAmount
		r.TotalSetterCommissions += l.SetterCommission
		r.TotalCloserCommissions += l.CloserCommission
		if l.Bought {
			r.PayingLeads++
		}
	}
	r.TotalCommissions = r.TotalSetterCommissions + r.TotalCloserCommissions

	if r.PayingLeads > 0 {
		r.AvgTicket = r.TotalRevenue / float64(r.PayingLeads)
	}
	if r.TotalRevenue > 0 {
		r.CollectionEfficiency = r.TotalCollected / r.TotalRevenue * 100
	}
	r.OperatingMargin = r.TotalCollected - r.TotalCommissions

	r.SetterStats = GroupBySetter(leads)
	r.CloserStats = GroupByCloser(leads)
	r.Origins = BreakdownByOrigin(leads)

	return r
}

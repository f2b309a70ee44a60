// internal/domain/report/entity.go
package report

// DashboardStats are the headline KPIs over a date-filtered lead set.
// MonthlySales is collected cash; GrossRevenue is contracted value. The
// two are reported side by side and never conflated.
type DashboardStats struct {
	TotalLeads       int     `json:"total_leads"`
	MonthlySales     float64 `json:"monthly_sales"`
	TotalCommissions float64 `json:"total_commissions"`
	ConversionRate   float64 `json:"conversion_rate"`
	GrossRevenue     float64 `json:"gross_revenue"`
}

// PersonnelStats is one setter or closer bucket. Commissions sums only
// that person's own commission field for the grouping being computed.
type PersonnelStats struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	Sales       int     `json:"sales"`
	Commissions float64 `json:"commissions"`
}

// OriginStats is one acquisition channel's share of the filtered set.
type OriginStats struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Sales      int     `json:"sales"`
	Conversion float64 `json:"conversion"`
}

// Report is the full business-intelligence roll-up.
type Report struct {
	TotalLeads  int `json:"total_leads"`
	PayingLeads int `json:"paying_leads"`

	TotalRevenue           float64 `json:"total_revenue"`
	TotalCollected         float64 `json:"total_collected"`
	TotalCommissions       float64 `json:"total_commissions"`
	TotalSetterCommissions float64 `json:"total_setter_commissions"`
	TotalCloserCommissions float64 `json:"total_closer_commissions"`

	AvgTicket            float64 `json:"avg_ticket"`
	CollectionEfficiency float64 `json:"collection_efficiency"`
	// OperatingMargin is collected minus commissions; negative values
	// pass through unclamped.
	OperatingMargin float64 `json:"operating_margin"`

	SetterStats []PersonnelStats `json:"setter_stats"`
	CloserStats []PersonnelStats `json:"closer_stats"`
	Origins     []OriginStats    `json:"origins"`
}

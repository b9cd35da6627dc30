package domain

import "time"

// FunnelStage is one bar of the conversion funnel chart.
type FunnelStage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PackageMixEntry is one slice of the package mix chart.
type PackageMixEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SourcePerformance aggregates the leads of a single acquisition source.
// ConversionRate is pre-formatted with two decimal places, "0" when the
// source has no leads, matching how the dashboard table renders it.
type SourcePerformance struct {
	Source         string `json:"source"`
	Total          int    `json:"total"`
	Qualified      int    `json:"qualified"`
	Submitted      int    `json:"submitted"`
	ConversionRate string `json:"conversion_rate"`
}

// TrendPoint is one calendar day of the daily trend series.
type TrendPoint struct {
	Date      string `json:"date"`
	Leads     int    `json:"leads"`
	Qualified int    `json:"qualified"`
	Submitted int    `json:"submitted"`
}

// RevenueProjection is the fixed-formula commission model evaluated for a
// given activation count. All monetary values are in KSh. ROI is rendered as
// integer percentage text, "0" when the monthly cost is zero.
type RevenueProjection struct {
	SubmittedCount      int     `json:"submitted_count"`
	TierRate            float64 `json:"tier_rate"`
	QuarterlyBonus      float64 `json:"quarterly_bonus"`
	AvgCommission       float64 `json:"avg_commission"`
	NewSalesRevenue     float64 `json:"new_sales_revenue"`
	ActiveResidualUsers float64 `json:"active_residual_users"`
	ResidualRevenue     float64 `json:"residual_revenue"`
	TotalRevenue        float64 `json:"total_revenue"`
	NetProfit           float64 `json:"net_profit"`
	ROI                 string  `json:"roi"`
}

// Insights carries the "quick insights" cards derived from the lead book.
// Shares are integer percentages of the total lead count.
type Insights struct {
	TopCity         string `json:"top_city"`
	TopCityShare    int    `json:"top_city_share"`
	TopSegment      string `json:"top_segment"`
	TopSegmentShare int    `json:"top_segment_share"`
}

// DashboardSummary is the display-ready KPI set for the dashboard page.
// Activations count successful submissions, while the funnel counts lead
// statuses; the two views intentionally disagree when the portal lags behind
// the lead book.
type DashboardSummary struct {
	TotalLeads        int               `json:"total_leads"`
	NewLeadsThisWeek  int               `json:"new_leads_this_week"`
	ContactedLeads    int               `json:"contacted_leads"`
	QualifiedLeads    int               `json:"qualified_leads"`
	Activations       int               `json:"activations"`
	QualificationRate string            `json:"qualification_rate"`
	ActivationRate    string            `json:"activation_rate"`
	ContactRate       string            `json:"contact_rate"`
	CostPerActivation float64           `json:"cost_per_activation"`
	Revenue           RevenueProjection `json:"revenue"`
	Insights          Insights          `json:"insights"`
}

// MetricsSnapshot is a dashboard summary persisted by the snapshot scheduler,
// served to pollers that want the latest pre-computed figures.
type MetricsSnapshot struct {
	ID        int              `json:"id"`
	Summary   DashboardSummary `json:"summary"`
	CreatedAt time.Time        `json:"created_at"`
}

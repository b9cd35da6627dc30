package reporting

import (
	"testing"
	"time"

	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lead(source string, tag domain.LeadTag, status domain.LeadStatus) *domain.Lead {
	return &domain.Lead{Source: source, Tag: tag, Status: status}
}

func TestFunnelCounts(t *testing.T) {
	leads := []*domain.Lead{
		lead("nairobi-facebook", domain.LeadTagHighValue, domain.LeadStatusNew),
		lead("nairobi-facebook", domain.LeadTagHighValue, domain.LeadStatusNew),
		lead("nakuru-scraper", domain.LeadTagHighVolume, domain.LeadStatusQualified),
		lead("nakuru-scraper", domain.LeadTagHighVolume, domain.LeadStatusFailed),
		lead("eldoret-referral", domain.LeadTagHighVolume, domain.LeadStatus("weird")),
	}

	stages := FunnelCounts(leads)
	require.Len(t, stages, 5)

	assert.Equal(t, domain.FunnelStage{Name: "New", Count: 2}, stages[0])
	assert.Equal(t, domain.FunnelStage{Name: "Contacted", Count: 0}, stages[1])
	assert.Equal(t, domain.FunnelStage{Name: "Qualified", Count: 1}, stages[2])
	assert.Equal(t, domain.FunnelStage{Name: "Submitted", Count: 0}, stages[3])
	assert.Equal(t, domain.FunnelStage{Name: "Installed", Count: 0}, stages[4])

	// Failed and unknown statuses never surface in any stage.
	total := 0
	for _, stage := range stages {
		total += stage.Count
	}
	assert.Equal(t, 3, total)
}

func TestFunnelCounts_Empty(t *testing.T) {
	stages := FunnelCounts(nil)
	require.Len(t, stages, 5)
	for _, stage := range stages {
		assert.Zero(t, stage.Count)
	}
}

func TestPackageMix(t *testing.T) {
	leads := []*domain.Lead{
		{PreferredPackage: domain.Package15Mbps},
		{PreferredPackage: domain.Package15Mbps},
		{PreferredPackage: domain.Package30Mbps},
		{PreferredPackage: domain.PackageUnspecified},
		{PreferredPackage: domain.PackageOption("100mbps")},
	}

	mix := PackageMix(leads)
	require.Len(t, mix, 3)

	assert.Equal(t, domain.PackageMixEntry{Name: "15MBPS", Count: 2}, mix[0])
	assert.Equal(t, domain.PackageMixEntry{Name: "30MBPS", Count: 1}, mix[1])
	assert.Equal(t, domain.PackageMixEntry{Name: "Unspecified", Count: 1}, mix[2])
}

func TestSourcePerformance(t *testing.T) {
	leads := []*domain.Lead{
		lead("nairobi-facebook", domain.LeadTagHighValue, domain.LeadStatusSubmitted),
		lead("nakuru-scraper", domain.LeadTagHighVolume, domain.LeadStatusNew),
		lead("nairobi-facebook", domain.LeadTagHighValue, domain.LeadStatusQualified),
		lead("nairobi-facebook", domain.LeadTagHighValue, domain.LeadStatusNew),
	}

	performance := SourcePerformance(leads)
	require.Len(t, performance, 2)

	// Groups come out in first-seen order.
	assert.Equal(t, "nairobi-facebook", performance[0].Source)
	assert.Equal(t, 3, performance[0].Total)
	assert.Equal(t, 1, performance[0].Qualified)
	assert.Equal(t, 1, performance[0].Submitted)
	assert.Equal(t, "33.33", performance[0].ConversionRate)

	assert.Equal(t, "nakuru-scraper", performance[1].Source)
	assert.Equal(t, 1, performance[1].Total)
	assert.Equal(t, "0.00", performance[1].ConversionRate)
}

func TestSourcePerformance_Empty(t *testing.T) {
	assert.Empty(t, SourcePerformance(nil))
}

func TestDailyTrend(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.Local)

	leads := []*domain.Lead{
		{Status: domain.LeadStatusNew, CreatedAt: now},
		{Status: domain.LeadStatusQualified, CreatedAt: now.AddDate(0, 0, -1)},
		{Status: domain.LeadStatusSubmitted, CreatedAt: now.AddDate(0, 0, -1)},
		{Status: domain.LeadStatusNew, CreatedAt: now.AddDate(0, 0, -40)}, // outside window
	}

	points := DailyTrend(leads, 7, now)
	require.Len(t, points, 7)

	// Exactly N consecutive days ending today, gaps filled with zeros.
	assert.Equal(t, now.AddDate(0, 0, -6).Format("Jan 2"), points[0].Date)
	assert.Equal(t, "May 10", points[6].Date)
	assert.Equal(t, 1, points[6].Leads)
	assert.Equal(t, 2, points[5].Leads)
	assert.Equal(t, 1, points[5].Qualified)
	assert.Equal(t, 1, points[5].Submitted)
	for i := 0; i < 5; i++ {
		assert.Zero(t, points[i].Leads)
	}
}

func TestDailyTrend_MidnightBoundary(t *testing.T) {
	// Shortly after local midnight: a lead created 23:30 the previous evening
	// must land on yesterday's bucket, not today's.
	now := time.Date(2025, 5, 10, 0, 30, 0, 0, time.Local)
	leads := []*domain.Lead{
		{Status: domain.LeadStatusNew, CreatedAt: time.Date(2025, 5, 9, 23, 30, 0, 0, time.Local)},
		{Status: domain.LeadStatusNew, CreatedAt: time.Date(2025, 5, 10, 0, 10, 0, 0, time.Local)},
	}

	points := DailyTrend(leads, 2, now)
	require.Len(t, points, 2)
	assert.Equal(t, "May 9", points[0].Date)
	assert.Equal(t, 1, points[0].Leads)
	assert.Equal(t, "May 10", points[1].Date)
	assert.Equal(t, 1, points[1].Leads)
}

func TestDailyTrend_WindowOfOne(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.Local)
	points := DailyTrend(nil, 1, now)
	require.Len(t, points, 1)
	assert.Equal(t, "May 10", points[0].Date)
	assert.Zero(t, points[0].Leads)
}

func TestDeriveInsights(t *testing.T) {
	leads := []*domain.Lead{
		lead("nairobi-facebook", domain.LeadTagHighValue, domain.LeadStatusNew),
		lead("nairobi-scraper", domain.LeadTagHighVolume, domain.LeadStatusNew),
		lead("nakuru-facebook", domain.LeadTagHighVolume, domain.LeadStatusNew),
		lead("nairobi-referral", domain.LeadTagHighVolume, domain.LeadStatusNew),
	}

	insights := DeriveInsights(leads)

	assert.Equal(t, "nairobi", insights.TopCity)
	assert.Equal(t, 75, insights.TopCityShare)
	assert.Equal(t, "High-Volume Leads", insights.TopSegment)
	assert.Equal(t, 75, insights.TopSegmentShare)
}

func TestDeriveInsights_TieBreakFirstSeen(t *testing.T) {
	leads := []*domain.Lead{
		lead("mombasa-facebook", domain.LeadTagHighVolume, domain.LeadStatusNew),
		lead("kisumu-facebook", domain.LeadTagHighValue, domain.LeadStatusNew),
	}

	insights := DeriveInsights(leads)

	assert.Equal(t, "mombasa", insights.TopCity)
	assert.Equal(t, 50, insights.TopCityShare)
	assert.Equal(t, "High-Volume Leads", insights.TopSegment)
	assert.Equal(t, 50, insights.TopSegmentShare)
}

func TestDeriveInsights_Empty(t *testing.T) {
	insights := DeriveInsights(nil)

	assert.Equal(t, "Nairobi", insights.TopCity)
	assert.Zero(t, insights.TopCityShare)
	assert.Equal(t, "High-Volume Leads", insights.TopSegment)
	assert.Zero(t, insights.TopSegmentShare)
}

func TestDeriveInsights_SourceWithoutDelimiter(t *testing.T) {
	leads := []*domain.Lead{
		lead("walkin", domain.LeadTagHighValue, domain.LeadStatusNew),
		lead("", domain.LeadTagHighValue, domain.LeadStatusNew),
	}

	insights := DeriveInsights(leads)
	assert.Contains(t, []string{"walkin", "Unknown"}, insights.TopCity)
	assert.Equal(t, 50, insights.TopCityShare)
}

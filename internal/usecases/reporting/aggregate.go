package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/nexalink/lead-manager-api/pkg/utils"
)

// FunnelCounts counts leads per funnel stage, in stage order. Failed leads
// and unknown statuses never appear here.
func FunnelCounts(leads []*domain.Lead) []domain.FunnelStage {
	stages := make([]domain.FunnelStage, 0, len(domain.FunnelStatuses))
	for _, status := range domain.FunnelStatuses {
		count := 0
		for _, lead := range leads {
			if lead.Status == status {
				count++
			}
		}
		stages = append(stages, domain.FunnelStage{
			Name:  status.Display(),
			Count: count,
		})
	}
	return stages
}

// PackageMix counts leads per preferred package. Values outside the three
// known packages are excluded from every bucket.
func PackageMix(leads []*domain.Lead) []domain.PackageMixEntry {
	options := []domain.PackageOption{
		domain.Package15Mbps,
		domain.Package30Mbps,
		domain.PackageUnspecified,
	}

	mix := make([]domain.PackageMixEntry, 0, len(options))
	for _, option := range options {
		count := 0
		for _, lead := range leads {
			if lead.PreferredPackage == option {
				count++
			}
		}
		mix = append(mix, domain.PackageMixEntry{
			Name:  option.Display(),
			Count: count,
		})
	}
	return mix
}

// SourcePerformance groups leads by source in first-seen order and computes
// per-source totals and the submitted conversion rate. The rate is formatted
// with two decimal places, "0" for an empty group.
func SourcePerformance(leads []*domain.Lead) []domain.SourcePerformance {
	order := make([]string, 0)
	groups := make(map[string][]*domain.Lead)

	for _, lead := range leads {
		if _, seen := groups[lead.Source]; !seen {
			order = append(order, lead.Source)
		}
		groups[lead.Source] = append(groups[lead.Source], lead)
	}

	performance := make([]domain.SourcePerformance, 0, len(order))
	for _, source := range order {
		sourceLeads := groups[source]

		qualified := 0
		submitted := 0
		for _, lead := range sourceLeads {
			switch lead.Status {
			case domain.LeadStatusQualified:
				qualified++
			case domain.LeadStatusSubmitted:
				submitted++
			}
		}

		rate := "0"
		if len(sourceLeads) > 0 {
			rate = fmt.Sprintf("%.2f", float64(submitted)/float64(len(sourceLeads))*100)
		}

		performance = append(performance, domain.SourcePerformance{
			Source:         source,
			Total:          len(sourceLeads),
			Qualified:      qualified,
			Submitted:      submitted,
			ConversionRate: rate,
		})
	}

	return performance
}

// trendLabelLayout is the short label shown on the trend chart axis.
const trendLabelLayout = "Jan 2"

// DailyTrend produces exactly days entries, one per local calendar day,
// ending on the day of now. Bucket keys and window days are truncated with
// the same utils.DayKey, so a timestamp can never land on the wrong side of
// a midnight boundary.
func DailyTrend(leads []*domain.Lead, days int, now time.Time) []domain.TrendPoint {
	if days < 1 {
		days = 1
	}

	type bucket struct {
		leads     int
		qualified int
		submitted int
	}

	buckets := make(map[string]*bucket)
	for _, lead := range leads {
		key := utils.DayKey(lead.CreatedAt)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.leads++
		switch lead.Status {
		case domain.LeadStatusQualified:
			b.qualified++
		case domain.LeadStatusSubmitted:
			b.submitted++
		}
	}

	points := make([]domain.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := domain.TrendPoint{
			Date: day.Local().Format(trendLabelLayout),
		}
		if b, ok := buckets[utils.DayKey(day)]; ok {
			point.Leads = b.leads
			point.Qualified = b.qualified
			point.Submitted = b.submitted
		}
		points = append(points, point)
	}

	return points
}

// DeriveInsights picks the most frequent city prefix of the lead sources and
// the most frequent tag, each with its integer share of the total. Ties go to
// the value seen first in input order.
func DeriveInsights(leads []*domain.Lead) domain.Insights {
	insights := domain.Insights{
		TopCity:    "Nairobi",
		TopSegment: domain.LeadTagHighVolume.SegmentLabel(),
	}

	if len(leads) == 0 {
		return insights
	}

	cityOrder := make([]string, 0)
	cityCounts := make(map[string]int)
	tagOrder := make([]domain.LeadTag, 0)
	tagCounts := make(map[domain.LeadTag]int)

	for _, lead := range leads {
		city := cityOf(lead.Source)
		if _, seen := cityCounts[city]; !seen {
			cityOrder = append(cityOrder, city)
		}
		cityCounts[city]++

		if _, seen := tagCounts[lead.Tag]; !seen {
			tagOrder = append(tagOrder, lead.Tag)
		}
		tagCounts[lead.Tag]++
	}

	topCity := cityOrder[0]
	for _, city := range cityOrder[1:] {
		if cityCounts[city] > cityCounts[topCity] {
			topCity = city
		}
	}

	topTag := tagOrder[0]
	for _, tag := range tagOrder[1:] {
		if tagCounts[tag] > tagCounts[topTag] {
			topTag = tag
		}
	}

	total := float64(len(leads))
	insights.TopCity = topCity
	insights.TopCityShare = utils.RoundToPercent(float64(cityCounts[topCity]), total)
	insights.TopSegment = topTag.SegmentLabel()
	insights.TopSegmentShare = utils.RoundToPercent(float64(tagCounts[topTag]), total)

	return insights
}

// cityOf extracts the city prefix of a source tag such as "nakuru-facebook".
func cityOf(source string) string {
	city, _, _ := strings.Cut(source, "-")
	if city == "" {
		return "Unknown"
	}
	return city
}

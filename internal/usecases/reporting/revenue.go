package reporting

import (
	"fmt"
	"math"

	"github.com/nexalink/lead-manager-api/internal/config"
	"github.com/nexalink/lead-manager-api/internal/domain"
)

// monthsPerQuarter prorates the quarterly volume bonus onto a monthly figure.
const monthsPerQuarter = 3

// ProjectRevenue evaluates the commission model for a monthly activation
// count. The arithmetic mirrors the reseller contract and must not be
// "improved": tier selection, the weighted commission, and the residual
// income chain are all fixed terms.
func ProjectRevenue(model config.RevenueModel, submitted int) domain.RevenueProjection {
	tierRate := model.BaseTierRate
	quarterlyBonus := 0.0

	switch {
	case submitted >= 400:
		tierRate = model.Tier400Rate
		quarterlyBonus = model.QuarterlyBonus400 / monthsPerQuarter
	case submitted >= 300:
		tierRate = model.Tier300Rate
		quarterlyBonus = model.QuarterlyBonus300 / monthsPerQuarter
	case submitted >= 200:
		tierRate = model.Tier200Rate
	case submitted >= 100:
		tierRate = model.Tier100Rate
	}

	avgCommission := model.Share15Mbps*(model.Commission15Mbps*tierRate) +
		model.Share30Mbps*(model.Commission30Mbps*tierRate)
	newSalesRevenue := float64(submitted) * avgCommission

	residualTierRate := model.ResidualTierLow
	if model.RetentionRate >= model.ResidualThreshold {
		residualTierRate = model.ResidualTierHigh
	}
	avgMRR := model.Share15Mbps*model.MRR15Mbps + model.Share30Mbps*model.MRR30Mbps
	activeResidualUsers := float64(submitted) * model.ResidualUserFactor * model.RetentionRate
	residualRevenue := activeResidualUsers * avgMRR * residualTierRate

	totalRevenue := newSalesRevenue + quarterlyBonus + residualRevenue
	netProfit := totalRevenue - model.MonthlyCost

	roi := "0"
	if model.MonthlyCost > 0 {
		roi = fmt.Sprintf("%.0f", netProfit/model.MonthlyCost*100)
	}

	return domain.RevenueProjection{
		SubmittedCount:      submitted,
		TierRate:            tierRate,
		QuarterlyBonus:      quarterlyBonus,
		AvgCommission:       avgCommission,
		NewSalesRevenue:     newSalesRevenue,
		ActiveResidualUsers: activeResidualUsers,
		ResidualRevenue:     residualRevenue,
		TotalRevenue:        totalRevenue,
		NetProfit:           netProfit,
		ROI:                 roi,
	}
}

// CostPerActivation is the monthly spend divided over successful activations,
// rounded to whole shillings. Zero when there are no activations yet.
func CostPerActivation(monthlyCost float64, activations int) float64 {
	if activations == 0 {
		return 0
	}
	return math.Round(monthlyCost / float64(activations))
}

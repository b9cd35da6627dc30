package reporting

import (
	"testing"

	"github.com/nexalink/lead-manager-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func testRevenueModel() config.RevenueModel {
	return config.RevenueModel{
		BaseTierRate: 0.50,
		Tier100Rate:  0.55,
		Tier200Rate:  0.60,
		Tier300Rate:  0.65,
		Tier400Rate:  0.70,

		QuarterlyBonus300: 66000,
		QuarterlyBonus400: 132000,

		Commission15Mbps: 1498,
		Commission30Mbps: 2248,
		Share15Mbps:      0.95,
		Share30Mbps:      0.05,

		MRR15Mbps:          2999,
		MRR30Mbps:          3999,
		RetentionRate:      0.75,
		ResidualThreshold:  0.70,
		ResidualTierHigh:   0.15,
		ResidualTierLow:    0.10,
		ResidualUserFactor: 6,

		MonthlyCost: 8000,
	}
}

func TestProjectRevenue_TierSelection(t *testing.T) {
	model := testRevenueModel()

	tests := []struct {
		submitted int
		tierRate  float64
		bonus     float64
	}{
		{0, 0.50, 0},
		{99, 0.50, 0},
		{100, 0.55, 0},
		{199, 0.55, 0},
		{200, 0.60, 0},
		{300, 0.65, 22000},
		{400, 0.70, 44000},
		{500, 0.70, 44000},
	}

	for _, tt := range tests {
		projection := ProjectRevenue(model, tt.submitted)
		assert.Equal(t, tt.tierRate, projection.TierRate, "submitted=%d", tt.submitted)
		assert.InDelta(t, tt.bonus, projection.QuarterlyBonus, 0.001, "submitted=%d", tt.submitted)
	}
}

func TestProjectRevenue_At250Activations(t *testing.T) {
	projection := ProjectRevenue(testRevenueModel(), 250)

	assert.Equal(t, 0.60, projection.TierRate)
	assert.Zero(t, projection.QuarterlyBonus)

	// 0.95×(1498×0.6) + 0.05×(2248×0.6) = 853.86 + 67.44
	assert.InDelta(t, 921.3, projection.AvgCommission, 0.0001)
	assert.InDelta(t, 230325, projection.NewSalesRevenue, 0.01)

	// 250 × 6 × 0.75 active users at (0.95×2999 + 0.05×3999) × 0.15 each.
	assert.InDelta(t, 1125, projection.ActiveResidualUsers, 0.0001)
	avgMRR := 0.95*2999 + 0.05*3999
	expectedResidual := 1125 * avgMRR * 0.15
	assert.InDelta(t, expectedResidual, projection.ResidualRevenue, 0.01)

	expectedTotal := 230325 + expectedResidual
	assert.InDelta(t, expectedTotal, projection.TotalRevenue, 0.01)
	assert.InDelta(t, expectedTotal-8000, projection.NetProfit, 0.01)
}

func TestProjectRevenue_ROIFormatting(t *testing.T) {
	model := testRevenueModel()

	projection := ProjectRevenue(model, 0)
	// Zero activations: revenue is 0, net profit -8000, ROI -100%.
	assert.Equal(t, "-100", projection.ROI)

	model.MonthlyCost = 0
	projection = ProjectRevenue(model, 250)
	assert.Equal(t, "0", projection.ROI)
}

func TestProjectRevenue_LowRetentionDropsResidualTier(t *testing.T) {
	model := testRevenueModel()
	model.RetentionRate = 0.60

	projection := ProjectRevenue(model, 100)

	avgMRR := 0.95*2999 + 0.05*3999
	expectedUsers := 100 * 6 * 0.60
	assert.InDelta(t, expectedUsers, projection.ActiveResidualUsers, 0.0001)
	assert.InDelta(t, expectedUsers*avgMRR*0.10, projection.ResidualRevenue, 0.01)
}

func TestCostPerActivation(t *testing.T) {
	assert.Zero(t, CostPerActivation(8000, 0))
	assert.Equal(t, 32.0, CostPerActivation(8000, 250))
	assert.Equal(t, 27.0, CostPerActivation(8000, 300)) // 26.67 rounds up
}

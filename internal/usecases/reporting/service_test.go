package reporting

import (
	"testing"
	"time"

	"github.com/nexalink/lead-manager-api/infrastructure/repository/mocks"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockLeadRepository, *mocks.MockSubmissionRepository, *mocks.MockMetricsSnapshotRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)
	mockSnapshotRepo := mocks.NewMockMetricsSnapshotRepository(ctrl)

	service := NewService(mockLeadRepo, mockSubmissionRepo, mockSnapshotRepo, testRevenueModel())
	return service, mockLeadRepo, mockSubmissionRepo, mockSnapshotRepo
}

func TestService_Dashboard(t *testing.T) {
	service, mockLeadRepo, mockSubmissionRepo, _ := newTestService(t)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	service.now = func() time.Time { return now }

	mockLeadRepo.EXPECT().ListLeads().Return([]*domain.Lead{
		{Source: "nairobi-facebook", Tag: domain.LeadTagHighValue, Status: domain.LeadStatusQualified, CreatedAt: now.AddDate(0, 0, -2)},
		{Source: "nairobi-scraper", Tag: domain.LeadTagHighVolume, Status: domain.LeadStatusContacted, CreatedAt: now.AddDate(0, 0, -10)},
		{Source: "nakuru-scraper", Tag: domain.LeadTagHighVolume, Status: domain.LeadStatusNew, CreatedAt: now.AddDate(0, 0, -1)},
		{Source: "nairobi-referral", Tag: domain.LeadTagHighVolume, Status: domain.LeadStatusQualified, CreatedAt: now.AddDate(0, 0, -20)},
	}, nil)
	mockSubmissionRepo.EXPECT().ListSubmissions().Return([]*domain.Submission{
		{Status: domain.SubmissionStatusSuccess},
		{Status: domain.SubmissionStatusFailed},
		{Status: domain.SubmissionStatusSuccess},
	}, nil)

	summary, err := service.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalLeads)
	assert.Equal(t, 2, summary.NewLeadsThisWeek)
	assert.Equal(t, 1, summary.ContactedLeads)
	assert.Equal(t, 2, summary.QualifiedLeads)
	assert.Equal(t, 2, summary.Activations)

	assert.Equal(t, "50.0", summary.QualificationRate)
	assert.Equal(t, "100.0", summary.ActivationRate)
	assert.Equal(t, "25.0", summary.ContactRate)

	assert.Equal(t, 4000.0, summary.CostPerActivation)
	assert.Equal(t, 2, summary.Revenue.SubmittedCount)
	assert.Equal(t, 0.50, summary.Revenue.TierRate)

	assert.Equal(t, "nairobi", summary.Insights.TopCity)
	assert.Equal(t, 75, summary.Insights.TopCityShare)
	assert.Equal(t, "High-Volume Leads", summary.Insights.TopSegment)
}

func TestService_Dashboard_EmptyBook(t *testing.T) {
	service, mockLeadRepo, mockSubmissionRepo, _ := newTestService(t)

	mockLeadRepo.EXPECT().ListLeads().Return(nil, nil)
	mockSubmissionRepo.EXPECT().ListSubmissions().Return(nil, nil)

	summary, err := service.Dashboard()
	require.NoError(t, err)

	assert.Zero(t, summary.TotalLeads)
	assert.Equal(t, "0", summary.QualificationRate)
	assert.Equal(t, "0", summary.ActivationRate)
	assert.Equal(t, "0", summary.ContactRate)
	assert.Zero(t, summary.CostPerActivation)
	assert.Equal(t, "Nairobi", summary.Insights.TopCity)
}

func TestService_Trend_DefaultsWindow(t *testing.T) {
	service, mockLeadRepo, _, _ := newTestService(t)

	mockLeadRepo.EXPECT().ListLeads().Return(nil, nil).Times(2)

	points, err := service.Trend(0)
	require.NoError(t, err)
	assert.Len(t, points, DefaultTrendDays)

	points, err = service.Trend(7)
	require.NoError(t, err)
	assert.Len(t, points, 7)
}

func TestService_SaveSnapshot(t *testing.T) {
	service, mockLeadRepo, mockSubmissionRepo, mockSnapshotRepo := newTestService(t)

	mockLeadRepo.EXPECT().ListLeads().Return(nil, nil)
	mockSubmissionRepo.EXPECT().ListSubmissions().Return(nil, nil)
	mockSnapshotRepo.EXPECT().
		SaveSnapshot(gomock.Any()).
		DoAndReturn(func(summary *domain.DashboardSummary) (*domain.MetricsSnapshot, error) {
			return &domain.MetricsSnapshot{ID: 1, Summary: *summary, CreatedAt: time.Now()}, nil
		})

	snapshot, err := service.SaveSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.ID)
}

func TestService_SaveSnapshot_ListError(t *testing.T) {
	service, mockLeadRepo, _, _ := newTestService(t)

	mockLeadRepo.EXPECT().ListLeads().Return(nil, errors.New("connection refused"))

	snapshot, err := service.SaveSnapshot()
	assert.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestService_LatestSnapshot_NoneYet(t *testing.T) {
	service, _, _, mockSnapshotRepo := newTestService(t)

	mockSnapshotRepo.EXPECT().GetLatestSnapshot().Return(nil, nil)

	snapshot, err := service.LatestSnapshot()
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

package exporting

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

func stringPtr(s string) *string {
	return &s
}

func TestService_ExportLeads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)

	created := time.Date(2025, 4, 2, 10, 30, 0, 0, time.UTC)
	mockLeadRepo.EXPECT().ListLeads().Return([]*domain.Lead{
		{
			ID:               1,
			CustomerName:     stringPtr("Mama Njeri Shop, Westlands"),
			Phone:            "+254700000001",
			Email:            stringPtr("njeri@example.com"),
			Source:           "nairobi-facebook",
			Tag:              domain.LeadTagHighValue,
			Status:           domain.LeadStatusQualified,
			PreferredPackage: domain.Package15Mbps,
			CreatedAt:        created,
		},
		{
			ID:        2,
			Phone:     "+254700000002",
			Source:    "nakuru-scraper",
			Tag:       domain.LeadTagHighVolume,
			Status:    domain.LeadStatusNew,
			CreatedAt: created,
		},
	}, nil)

	service := NewService(mockLeadRepo, mockSubmissionRepo)
	service.now = func() time.Time { return time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC) }

	doc, err := service.ExportLeads()
	require.NoError(t, err)

	assert.Equal(t, "leads-2025-04-02.csv", doc.Filename)
	assert.Equal(t, 2, doc.Rows)

	expected := "ID,Customer Name,Phone,Email,Source,Tag,Status,Preferred Package,Created At\n" +
		"1,\"Mama Njeri Shop, Westlands\",+254700000001,njeri@example.com,nairobi-facebook,High-Value,Qualified,15MBPS,02/04/2025\n" +
		"2,,+254700000002,,nakuru-scraper,High-Volume,New,Unspecified,02/04/2025"
	assert.Equal(t, expected, doc.Body)
}

func TestService_ExportLeads_EmptyBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)

	mockLeadRepo.EXPECT().ListLeads().Return(nil, nil)

	service := NewService(mockLeadRepo, mockSubmissionRepo)

	doc, err := service.ExportLeads()
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Rows)
	assert.Equal(t, "ID,Customer Name,Phone,Email,Source,Tag,Status,Preferred Package,Created At", doc.Body)
}

func TestService_ExportLeads_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)

	mockLeadRepo.EXPECT().ListLeads().Return(nil, errors.New("connection refused"))

	service := NewService(mockLeadRepo, mockSubmissionRepo)

	doc, err := service.ExportLeads()
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestService_ExportSubmissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)

	created := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	mockSubmissionRepo.EXPECT().ListSubmissions().Return([]*domain.Submission{
		{
			ID:           10,
			LeadID:       1,
			Status:       domain.SubmissionStatusSuccess,
			ResponseCode: stringPtr("200"),
			RetryCount:   0,
			CreatedAt:    created,
		},
		{
			ID:           11,
			LeadID:       99,
			Status:       domain.SubmissionStatusFailed,
			RetryCount:   2,
			ErrorMessage: stringPtr("portal timeout"),
			CreatedAt:    created,
		},
	}, nil)
	mockLeadRepo.EXPECT().ListLeads().Return([]*domain.Lead{
		{ID: 1, CustomerName: stringPtr("Njeri"), Phone: "+254700000001"},
	}, nil)

	service := NewService(mockLeadRepo, mockSubmissionRepo)
	service.now = func() time.Time { return time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC) }

	doc, err := service.ExportSubmissions()
	require.NoError(t, err)

	assert.Equal(t, "submissions-2025-04-02.csv", doc.Filename)

	expected := "ID,Lead ID,Lead Name,Status,Response Code,Retry Count,Created At,Error Message\n" +
		"10,1,Njeri,Success,200,0,01/04/2025,\n" +
		"11,99,Lead #99,Failed,,2,01/04/2025,portal timeout"
	assert.Equal(t, expected, doc.Body)
}

func TestSubmissionRows_FallbackLabel(t *testing.T) {
	submissions := []*domain.Submission{
		{ID: 1, LeadID: 7, Status: domain.SubmissionStatusPending, CreatedAt: time.Now()},
	}

	rows := SubmissionRows(submissions, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lead #7", rows[0][2])
}

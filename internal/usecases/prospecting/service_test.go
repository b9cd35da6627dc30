package prospecting

import (
	"database/sql"
	"testing"

	"github.com/nexalink/lead-manager-api/infrastructure/repository/mocks"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func newTestService(t *testing.T) (Prospector, *mocks.MockLeadRepository, *mocks.MockSubmissionRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockLeadRepo := mocks.NewMockLeadRepository(ctrl)
	mockSubmissionRepo := mocks.NewMockSubmissionRepository(ctrl)

	return NewService(mockLeadRepo, mockSubmissionRepo), mockLeadRepo, mockSubmissionRepo
}

func TestService_CaptureLead(t *testing.T) {
	service, mockLeadRepo, _ := newTestService(t)

	mockLeadRepo.EXPECT().
		CreateLead(gomock.Any()).
		DoAndReturn(func(lead *domain.Lead) (*domain.Lead, error) {
			lead.ID = 1
			return lead, nil
		})

	lead, err := service.CaptureLead(&CaptureLeadRequest{
		CustomerName: stringPtr("Njeri"),
		Phone:        " +254700000001 ",
		Source:       "nairobi-facebook",
		Tag:          "high_value",
		Package:      "15mbps",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, lead.ID)
	assert.Equal(t, "+254700000001", lead.Phone)
	assert.Equal(t, domain.LeadTagHighValue, lead.Tag)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Equal(t, domain.Package15Mbps, lead.PreferredPackage)
}

func TestService_CaptureLead_Defaults(t *testing.T) {
	service, mockLeadRepo, _ := newTestService(t)

	mockLeadRepo.EXPECT().
		CreateLead(gomock.Any()).
		DoAndReturn(func(lead *domain.Lead) (*domain.Lead, error) {
			lead.ID = 2
			return lead, nil
		})

	lead, err := service.CaptureLead(&CaptureLeadRequest{Phone: "+254700000002"})
	require.NoError(t, err)

	assert.Equal(t, domain.LeadTagHighVolume, lead.Tag)
	assert.Equal(t, domain.PackageUnspecified, lead.PreferredPackage)
	assert.Equal(t, "landing-page", lead.Source)
}

func TestService_CaptureLead_Validation(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CaptureLead(&CaptureLeadRequest{Phone: "   "})
	assert.ErrorIs(t, err, ErrPhoneRequired)

	_, err = service.CaptureLead(&CaptureLeadRequest{Phone: "+254700000001", Tag: "vip"})
	assert.ErrorIs(t, err, ErrInvalidTag)

	_, err = service.CaptureLead(&CaptureLeadRequest{Phone: "+254700000001", Package: "100mbps"})
	assert.ErrorIs(t, err, ErrInvalidPackage)
}

func TestService_ListLeads_Filters(t *testing.T) {
	service, mockLeadRepo, _ := newTestService(t)

	leads := []*domain.Lead{
		{ID: 1, CustomerName: stringPtr("Njeri"), Phone: "+254700000001", Status: domain.LeadStatusNew, Tag: domain.LeadTagHighValue},
		{ID: 2, CustomerName: stringPtr("Otieno"), Phone: "+254700000002", Status: domain.LeadStatusQualified, Tag: domain.LeadTagHighVolume},
	}
	mockLeadRepo.EXPECT().ListLeads().Return(leads, nil).Times(3)

	all, err := service.ListLeads(domain.LeadFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	qualified, err := service.ListLeads(domain.LeadFilters{Status: domain.LeadStatusQualified})
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, 2, qualified[0].ID)

	byName, err := service.ListLeads(domain.LeadFilters{Search: "njeri"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, 1, byName[0].ID)
}

func TestService_UpdateLeadStatus(t *testing.T) {
	service, mockLeadRepo, _ := newTestService(t)

	mockLeadRepo.EXPECT().UpdateLeadStatus(1, domain.LeadStatusContacted).Return(nil)
	require.NoError(t, service.UpdateLeadStatus(1, "contacted"))

	err := service.UpdateLeadStatus(1, "paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	mockLeadRepo.EXPECT().UpdateLeadStatus(99, domain.LeadStatusContacted).Return(sql.ErrNoRows)
	err = service.UpdateLeadStatus(99, "contacted")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestService_RecordSubmission(t *testing.T) {
	service, mockLeadRepo, mockSubmissionRepo := newTestService(t)

	mockLeadRepo.EXPECT().GetLeadByID(1).Return(&domain.Lead{ID: 1, Phone: "+254700000001"}, nil)
	mockSubmissionRepo.EXPECT().
		CreateSubmission(gomock.Any()).
		DoAndReturn(func(submission *domain.Submission) (*domain.Submission, error) {
			submission.ID = 10
			return submission, nil
		})

	submission, err := service.RecordSubmission(&RecordSubmissionRequest{
		LeadID: 1,
		Status: "success",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, submission.ID)
	assert.Equal(t, domain.SubmissionStatusSuccess, submission.Status)
	assert.Len(t, submission.Reference, 6)
}

func TestService_RecordSubmission_UnknownLead(t *testing.T) {
	service, mockLeadRepo, _ := newTestService(t)

	mockLeadRepo.EXPECT().GetLeadByID(99).Return(nil, nil)

	_, err := service.RecordSubmission(&RecordSubmissionRequest{LeadID: 99, Status: "pending"})
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestService_RecordSubmission_InvalidStatus(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.RecordSubmission(&RecordSubmissionRequest{LeadID: 1, Status: "queued"})
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

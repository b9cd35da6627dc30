package prospecting

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nexalink/lead-manager-api/infrastructure/repository"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/nexalink/lead-manager-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrPhoneRequired     = errors.New("phone is required")
	ErrInvalidStatus     = errors.New("invalid lead status")
	ErrInvalidTag        = errors.New("invalid lead tag")
	ErrInvalidPackage    = errors.New("invalid package option")
	ErrInvalidSubmission = errors.New("invalid submission status")
	ErrLeadNotFound      = errors.New("lead not found")
)

// CaptureLeadRequest is the landing-page form payload. Everything except the
// phone number is optional; tag, status and package fall back to defaults.
type CaptureLeadRequest struct {
	CustomerName *string `json:"customer_name"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email"`
	Source       string  `json:"source"`
	Tag          string  `json:"tag"`
	Package      string  `json:"preferred_package"`
}

// RecordSubmissionRequest records one portal submission attempt against a
// lead.
type RecordSubmissionRequest struct {
	LeadID       int     `json:"lead_id"`
	Status       string  `json:"status"`
	ResponseCode *string `json:"response_code"`
	RetryCount   int     `json:"retry_count"`
	ErrorMessage *string `json:"error_message"`
	ResponseBody *string `json:"response_body"`
}

// Prospector manages the lead book and the submission log.
type Prospector interface {
	CaptureLead(req *CaptureLeadRequest) (*domain.Lead, error)
	GetLead(id int) (*domain.Lead, error)
	ListLeads(filters domain.LeadFilters) ([]*domain.Lead, error)
	UpdateLeadStatus(id int, status string) error
	RecordSubmission(req *RecordSubmissionRequest) (*domain.Submission, error)
	ListSubmissions() ([]*domain.Submission, error)
}

type Service struct {
	leadRepo       repository.LeadRepository
	submissionRepo repository.SubmissionRepository
}

func NewService(
	leadRepo repository.LeadRepository,
	submissionRepo repository.SubmissionRepository,
) Prospector {
	return &Service{
		leadRepo:       leadRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *Service) CaptureLead(req *CaptureLeadRequest) (*domain.Lead, error) {
	if strings.TrimSpace(req.Phone) == "" {
		return nil, ErrPhoneRequired
	}

	tag := domain.LeadTag(req.Tag)
	if req.Tag == "" {
		tag = domain.LeadTagHighVolume
	}
	if !tag.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTag, req.Tag)
	}

	pkg := domain.PackageOption(req.Package)
	if req.Package == "" {
		pkg = domain.PackageUnspecified
	}
	if !pkg.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPackage, req.Package)
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "landing-page"
	}

	lead := &domain.Lead{
		CustomerName:     req.CustomerName,
		Phone:            strings.TrimSpace(req.Phone),
		Email:            req.Email,
		Source:           source,
		Tag:              tag,
		Status:           domain.LeadStatusNew,
		PreferredPackage: pkg,
	}

	lead, err := s.leadRepo.CreateLead(lead)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"lead_id": lead.ID,
		"source":  lead.Source,
		"tag":     lead.Tag,
	}).Info("prospecting: lead captured")

	return lead, nil
}

func (s *Service) GetLead(id int) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetLeadByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// ListLeads loads the lead book and applies the dashboard filters in memory.
// The book is small enough that filtering here keeps the repository simple.
func (s *Service) ListLeads(filters domain.LeadFilters) ([]*domain.Lead, error) {
	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}

	if filters == (domain.LeadFilters{}) {
		return leads, nil
	}

	filtered := make([]*domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if filters.Matches(lead) {
			filtered = append(filtered, lead)
		}
	}
	return filtered, nil
}

func (s *Service) UpdateLeadStatus(id int, status string) error {
	leadStatus := domain.LeadStatus(status)
	if !leadStatus.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	err := s.leadRepo.UpdateLeadStatus(id, leadStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrLeadNotFound
	}
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"lead_id": id,
		"status":  leadStatus,
	}).Info("prospecting: lead status updated")

	return nil
}

func (s *Service) RecordSubmission(req *RecordSubmissionRequest) (*domain.Submission, error) {
	status := domain.SubmissionStatus(req.Status)
	if req.Status == "" {
		status = domain.SubmissionStatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubmission, req.Status)
	}

	if req.RetryCount < 0 {
		req.RetryCount = 0
	}

	lead, err := s.leadRepo.GetLeadByID(req.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	reference, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	submission := &domain.Submission{
		LeadID:       req.LeadID,
		Reference:    reference,
		Status:       status,
		ResponseCode: req.ResponseCode,
		RetryCount:   req.RetryCount,
		ErrorMessage: req.ErrorMessage,
		ResponseBody: req.ResponseBody,
	}

	submission, err = s.submissionRepo.CreateSubmission(submission)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"submission_id": submission.ID,
		"lead_id":       submission.LeadID,
		"reference":     submission.Reference,
		"status":        submission.Status,
	}).Info("prospecting: submission recorded")

	return submission, nil
}

func (s *Service) ListSubmissions() ([]*domain.Submission, error) {
	return s.submissionRepo.ListSubmissions()
}

package exporting

import (
	"time"

	"github.com/nexalink/lead-manager-api/infrastructure/repository"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// exportDateLayout is the locale date shown in export columns.
const exportDateLayout = "02/01/2006"

var leadHeaders = []string{
	"ID",
	"Customer Name",
	"Phone",
	"Email",
	"Source",
	"Tag",
	"Status",
	"Preferred Package",
	"Created At",
}

var submissionHeaders = []string{
	"ID",
	"Lead ID",
	"Lead Name",
	"Status",
	"Response Code",
	"Retry Count",
	"Created At",
	"Error Message",
}

// Document is an encoded export ready for download.
type Document struct {
	Filename string
	Body     string
	Rows     int
}

// Exporter produces downloadable CSV documents from the lead book.
type Exporter interface {
	ExportLeads() (*Document, error)
	ExportSubmissions() (*Document, error)
}

type Service struct {
	leadRepo       repository.LeadRepository
	submissionRepo repository.SubmissionRepository
	now            func() time.Time
}

func NewService(
	leadRepo repository.LeadRepository,
	submissionRepo repository.SubmissionRepository,
) *Service {
	return &Service{
		leadRepo:       leadRepo,
		submissionRepo: submissionRepo,
		now:            time.Now,
	}
}

// ExportLeads loads the full lead book and encodes it. An empty book yields a
// header-only document.
func (s *Service) ExportLeads() (*Document, error) {
	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}

	rows := LeadRows(leads)

	logrus.WithField("rows", len(rows)).Info("export: encoded leads document")

	return &Document{
		Filename: Filename("leads", s.now()),
		Body:     Encode(leadHeaders, rows),
		Rows:     len(rows),
	}, nil
}

// ExportSubmissions loads submissions plus the lead book (for display names)
// and encodes them.
func (s *Service) ExportSubmissions() (*Document, error) {
	submissions, err := s.submissionRepo.ListSubmissions()
	if err != nil {
		return nil, err
	}

	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}

	rows := SubmissionRows(submissions, leads)

	logrus.WithField("rows", len(rows)).Info("export: encoded submissions document")

	return &Document{
		Filename: Filename("submissions", s.now()),
		Body:     Encode(submissionHeaders, rows),
		Rows:     len(rows),
	}, nil
}

// LeadRows selects and formats the export columns for each lead.
func LeadRows(leads []*domain.Lead) [][]any {
	rows := make([][]any, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, []any{
			lead.ID,
			lead.CustomerName,
			lead.Phone,
			lead.Email,
			lead.Source,
			lead.Tag.Display(),
			lead.Status.Display(),
			lead.PreferredPackage.Display(),
			lead.CreatedAt.Format(exportDateLayout),
		})
	}
	return rows
}

// SubmissionRows formats submissions, resolving each owning lead to a
// display name with a "Lead #{id}" fallback for unknown leads.
func SubmissionRows(submissions []*domain.Submission, leads []*domain.Lead) [][]any {
	leadsByID := make(map[int]*domain.Lead, len(leads))
	for _, lead := range leads {
		leadsByID[lead.ID] = lead
	}

	rows := make([][]any, 0, len(submissions))
	for _, submission := range submissions {
		rows = append(rows, []any{
			submission.ID,
			submission.LeadID,
			submission.LeadLabel(leadsByID),
			submission.Status.Display(),
			submission.ResponseCode,
			submission.RetryCount,
			submission.CreatedAt.Format(exportDateLayout),
			submission.ErrorMessage,
		})
	}
	return rows
}

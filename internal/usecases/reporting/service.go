package reporting

import (
	"fmt"
	"time"

	"github.com/nexalink/lead-manager-api/infrastructure/repository"
	"github.com/nexalink/lead-manager-api/internal/config"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// DefaultTrendDays is the trend window served when the caller does not ask
// for a specific one.
const DefaultTrendDays = 30

// Reporter serves the analytics screens of the dashboard.
type Reporter interface {
	Funnel() ([]domain.FunnelStage, error)
	PackageMix() ([]domain.PackageMixEntry, error)
	Sources() ([]domain.SourcePerformance, error)
	Trend(days int) ([]domain.TrendPoint, error)
	Dashboard() (*domain.DashboardSummary, error)
	SaveSnapshot() (*domain.MetricsSnapshot, error)
	LatestSnapshot() (*domain.MetricsSnapshot, error)
}

type Service struct {
	leadRepo       repository.LeadRepository
	submissionRepo repository.SubmissionRepository
	snapshotRepo   repository.MetricsSnapshotRepository
	revenueModel   config.RevenueModel
	now            func() time.Time
}

func NewService(
	leadRepo repository.LeadRepository,
	submissionRepo repository.SubmissionRepository,
	snapshotRepo repository.MetricsSnapshotRepository,
	revenueModel config.RevenueModel,
) *Service {
	return &Service{
		leadRepo:       leadRepo,
		submissionRepo: submissionRepo,
		snapshotRepo:   snapshotRepo,
		revenueModel:   revenueModel,
		now:            time.Now,
	}
}

func (s *Service) Funnel() ([]domain.FunnelStage, error) {
	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}
	return FunnelCounts(leads), nil
}

func (s *Service) PackageMix() ([]domain.PackageMixEntry, error) {
	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}
	return PackageMix(leads), nil
}

func (s *Service) Sources() ([]domain.SourcePerformance, error) {
	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}
	return SourcePerformance(leads), nil
}

// Trend serves the last days calendar days, ending today. Non-positive day
// counts fall back to the default window.
func (s *Service) Trend(days int) ([]domain.TrendPoint, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}
	return DailyTrend(leads, days, s.now()), nil
}

// Dashboard computes the full KPI set from the current lead book and
// submission log.
func (s *Service) Dashboard() (*domain.DashboardSummary, error) {
	leads, err := s.leadRepo.ListLeads()
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.ListSubmissions()
	if err != nil {
		return nil, err
	}

	return s.buildSummary(leads, submissions), nil
}

// SaveSnapshot computes the dashboard summary and persists it for pollers.
func (s *Service) SaveSnapshot() (*domain.MetricsSnapshot, error) {
	summary, err := s.Dashboard()
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotRepo.SaveSnapshot(summary)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"total_leads": summary.TotalLeads,
		"activations": summary.Activations,
	}).Info("reporting: metrics snapshot saved")

	return snapshot, nil
}

// LatestSnapshot returns the newest persisted snapshot, nil when the
// scheduler has not run yet.
func (s *Service) LatestSnapshot() (*domain.MetricsSnapshot, error) {
	return s.snapshotRepo.GetLatestSnapshot()
}

func (s *Service) buildSummary(leads []*domain.Lead, submissions []*domain.Submission) *domain.DashboardSummary {
	total := len(leads)
	qualified := 0
	contacted := 0
	newThisWeek := 0

	weekAgo := s.now().AddDate(0, 0, -7)
	for _, lead := range leads {
		switch lead.Status {
		case domain.LeadStatusQualified:
			qualified++
		case domain.LeadStatusContacted:
			contacted++
		}
		if !lead.CreatedAt.Before(weekAgo) {
			newThisWeek++
		}
	}

	activations := 0
	for _, submission := range submissions {
		if submission.Status == domain.SubmissionStatusSuccess {
			activations++
		}
	}

	summary := &domain.DashboardSummary{
		TotalLeads:        total,
		NewLeadsThisWeek:  newThisWeek,
		ContactedLeads:    contacted,
		QualifiedLeads:    qualified,
		Activations:       activations,
		QualificationRate: rate(qualified, total),
		ActivationRate:    rate(activations, qualified),
		ContactRate:       rate(contacted, total),
		CostPerActivation: CostPerActivation(s.revenueModel.MonthlyCost, activations),
		Revenue:           ProjectRevenue(s.revenueModel, activations),
		Insights:          DeriveInsights(leads),
	}

	return summary
}

// rate formats part over total as a one-decimal percentage, "0" when the
// denominator is zero.
func rate(part, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

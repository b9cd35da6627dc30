package domain

import (
	"strings"
	"time"
)

// LeadStatus is the funnel position of a lead. The five funnel statuses are
// ordered; "failed" is terminal and never appears in the funnel breakdown.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusSubmitted LeadStatus = "submitted"
	LeadStatusInstalled LeadStatus = "installed"
	LeadStatusFailed    LeadStatus = "failed"
)

// FunnelStatuses lists the funnel stages in order. Failed leads are excluded.
var FunnelStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusSubmitted,
	LeadStatusInstalled,
}

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusSubmitted, LeadStatusInstalled, LeadStatusFailed:
		return true
	}
	return false
}

// Display returns the capitalized form used on the dashboard and in exports.
func (s LeadStatus) Display() string {
	return capitalize(string(s))
}

// LeadTag classifies the acquisition strategy a lead came from.
type LeadTag string

const (
	LeadTagHighValue  LeadTag = "high_value"
	LeadTagHighVolume LeadTag = "high_volume"
)

func (t LeadTag) Valid() bool {
	return t == LeadTagHighValue || t == LeadTagHighVolume
}

func (t LeadTag) Display() string {
	if t == LeadTagHighValue {
		return "High-Value"
	}
	return "High-Volume"
}

// SegmentLabel is the longer label used by the dashboard insights card.
func (t LeadTag) SegmentLabel() string {
	if t == LeadTagHighValue {
		return "High-Value Businesses"
	}
	return "High-Volume Leads"
}

// PackageOption is the internet plan a lead asked about on the capture form.
type PackageOption string

const (
	Package15Mbps      PackageOption = "15mbps"
	Package30Mbps      PackageOption = "30mbps"
	PackageUnspecified PackageOption = "unspecified"
)

func (p PackageOption) Valid() bool {
	return p == Package15Mbps || p == Package30Mbps || p == PackageUnspecified
}

func (p PackageOption) Display() string {
	if p == "" || p == PackageUnspecified {
		return "Unspecified"
	}
	return strings.ToUpper(string(p))
}

// Lead is a prospect record. Leads are created by the landing-page form or by
// the upstream acquisition workflows, and their status transitions are driven
// by those workflows through the API.
type Lead struct {
	ID               int           `json:"id"`
	CustomerName     *string       `json:"customer_name"`
	Phone            string        `json:"phone"`
	Email            *string       `json:"email"`
	Source           string        `json:"source"`
	Tag              LeadTag       `json:"tag"`
	Status           LeadStatus    `json:"status"`
	PreferredPackage PackageOption `json:"preferred_package"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// DisplayName returns the customer name, or a placeholder built from the lead
// ID when the capture source did not provide one.
func (l *Lead) DisplayName() string {
	if l.CustomerName != nil && *l.CustomerName != "" {
		return *l.CustomerName
	}
	return ""
}

// LeadFilters narrows a lead listing. Zero values mean "no filter".
type LeadFilters struct {
	Search string
	Status LeadStatus
	Tag    LeadTag
}

// Matches reports whether the lead passes the filter set. The search term is
// matched case-insensitively against name and email and as a substring of the
// phone number, mirroring the dashboard search box.
func (f LeadFilters) Matches(l *Lead) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.Tag != "" && l.Tag != f.Tag {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	if l.CustomerName != nil && strings.Contains(strings.ToLower(*l.CustomerName), term) {
		return true
	}
	if l.Email != nil && strings.Contains(strings.ToLower(*l.Email), term) {
		return true
	}
	return strings.Contains(l.Phone, f.Search)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

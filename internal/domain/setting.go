package domain

import "time"

// Setting is a key/value configuration entry edited on the dashboard
// configuration screen and read by the automation workflows.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Known configuration keys. The automation treats unknown keys as opaque, so
// the API does not reject keys outside this list.
const (
	SettingHighValuePercentage    = "lead_gen_high_value_percentage"
	SettingLeadGenFrequency       = "lead_gen_frequency"
	SettingUpsellAggressiveness   = "upsell_aggressiveness"
	SettingQualificationFrequency = "qualification_frequency"
	SettingSubmissionMaxRetries   = "submission_max_retries"
	SettingSubmissionFrequency    = "submission_frequency"
)

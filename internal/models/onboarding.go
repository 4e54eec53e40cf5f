package models

// OnboardingStep is one milestone of the setup checklist.
type OnboardingStep struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Complete bool   `json:"complete"`
	CTAHref  string `json:"cta_href"`
	CTALabel string `json:"cta_label"`
}

// OnboardingStatus drives the dashboard setup checklist.
type OnboardingStatus struct {
	OwnerCount    int              `json:"owner_count"`
	PropertyCount int              `json:"property_count"`
	TenantCount   int              `json:"tenant_count"`
	LeaseCount    int              `json:"lease_count"`
	Steps         []OnboardingStep `json:"steps"`
	IsComplete    bool             `json:"is_complete"`
	// ShowWelcome is true only for a genuinely fresh account: every
	// count is zero and the reads succeeded.
	ShowWelcome bool `json:"show_welcome"`
	// LoadFailed distinguishes "empty because new" from "empty because
	// the reads failed"; the UI renders an error state instead of the
	// welcome dialog when set.
	LoadFailed bool `json:"load_failed"`
}

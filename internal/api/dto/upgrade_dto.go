package dto

// UpgradeStepResponse describes a registered upgrade step.
type UpgradeStepResponse struct {
	ID          string `json:"id"`
	Profile     string `json:"profile"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Title       string `json:"title"`
	Pending     bool   `json:"pending"`
}

// ProfileResponse reports the installed version and steps of a profile.
type ProfileResponse struct {
	Profile string                `json:"profile"`
	Version string                `json:"version"`
	Steps   []UpgradeStepResponse `json:"steps"`
}

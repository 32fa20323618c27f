package models

import "maps"

// Profile holds the single user's stored preferences
type Profile struct {
	ID            string            `json:"id,omitempty"`
	Division      string            `json:"division"`
	LabBatch      string            `json:"labBatch"`
	TutorialBatch string            `json:"tutorialBatch,omitempty"`
	Choices       map[string]string `json:"choices"`
	UpdatedAt     string            `json:"updatedAt,omitempty"` // RFC3339
}

// HasDivision reports whether the profile can resolve anything yet
func (p Profile) HasDivision() bool {
	return p.Division != ""
}

// Choice returns the stored value for a choice group
func (p Profile) Choice(groupID string) (string, bool) {
	if p.Choices == nil {
		return "", false
	}
	v, ok := p.Choices[groupID]
	return v, ok
}

// Clone returns a copy whose Choices map can be mutated independently
func (p Profile) Clone() Profile {
	c := p
	c.Choices = make(map[string]string, len(p.Choices))
	maps.Copy(c.Choices, p.Choices)
	return c
}

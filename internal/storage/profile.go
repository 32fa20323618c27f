package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
)

// LoadProfile returns the stored profile, or an empty profile when none has
// been saved yet.
func LoadProfile(p Provider) (models.Profile, error) {
	raw, err := p.Get(constants.ProfileKey)
	if errors.Is(err, ErrNotFound) {
		return models.Profile{Choices: map[string]string{}}, nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return models.Profile{}, fmt.Errorf("stored profile is corrupted: %w", err)
	}
	if profile.Choices == nil {
		profile.Choices = map[string]string{}
	}
	return profile, nil
}

// SaveProfile stamps UpdatedAt and writes the profile as a whole.
func SaveProfile(p Provider, profile models.Profile) (models.Profile, error) {
	profile = profile.Clone()
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(profile)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := p.Set(constants.ProfileKey, string(data)); err != nil {
		return models.Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// DeleteProfile removes the stored profile. Deleting a missing profile is not an error.
func DeleteProfile(p Provider) error {
	if err := p.Delete(constants.ProfileKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

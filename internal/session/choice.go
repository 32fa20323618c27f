package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

var (
	ErrInvalidGroup  = errors.New("invalid choice group")
	ErrEmptyValue    = errors.New("choice value must not be empty")
	ErrUnknownOption = errors.New("value is not an option for this group")
)

// ChoiceValue is one selectable value of a group
type ChoiceValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ChoiceOptions describes an unresolved (or resolved) choice group
type ChoiceOptions struct {
	GroupID   string           `json:"groupId"`
	Kind      string           `json:"kind"`
	Records   []models.Lecture `json:"records"`
	Values    []ChoiceValue    `json:"values"`
	AllowNone bool             `json:"allowNone"`
	Current   string           `json:"current,omitempty"`
}

// HasValue reports whether value is selectable in the group. The opt-out
// sentinel is always accepted.
func (o ChoiceOptions) HasValue(value string) bool {
	if value == constants.ChoiceNone {
		return true
	}
	for _, v := range o.Values {
		if v.Value == value {
			return true
		}
	}
	return false
}

// RequestResolution returns every timetable record of a group together with
// the values the user can pick from.
func (s *Session) RequestResolution(groupID string) (ChoiceOptions, error) {
	class, ok := timetable.ParseGroupID(groupID)
	if !ok {
		return ChoiceOptions{}, fmt.Errorf("%w: %q", ErrInvalidGroup, groupID)
	}
	records := s.engine.Store().ByGroup(groupID)
	if len(records) == 0 {
		return ChoiceOptions{}, fmt.Errorf("%w: no lectures belong to %q", ErrInvalidGroup, groupID)
	}

	opts := ChoiceOptions{
		GroupID:   groupID,
		Kind:      class.Kind.String(),
		Records:   records,
		Values:    choiceValues(class.Kind, records),
		AllowNone: class.Kind == timetable.KindMinor,
	}
	if current, ok := s.Profile().Choice(groupID); ok {
		opts.Current = current
	}
	return opts, nil
}

func choiceValues(kind timetable.Kind, records []models.Lecture) []ChoiceValue {
	seen := map[string]bool{}
	var values []ChoiceValue
	add := func(value, label string) {
		if value == "" || seen[value] {
			return
		}
		seen[value] = true
		values = append(values, ChoiceValue{Value: value, Label: label})
	}

	for _, l := range records {
		if kind == timetable.KindTutorial {
			for _, b := range l.Batches {
				add(b, "Tutorial Batch "+b)
			}
			continue
		}
		label := l.Subject
		if l.CustomGroup != "" {
			label = fmt.Sprintf("%s (%s)", l.Subject, l.CustomGroup)
			add(l.CustomGroup, label)
			continue
		}
		add(l.Subject, label)
	}
	return values
}

// ApplyChoice records value for the group and persists the profile. Applying
// the value already stored is a no-op.
func (s *Session) ApplyChoice(groupID, value string) (models.Profile, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.Profile{}, ErrEmptyValue
	}
	opts, err := s.RequestResolution(groupID)
	if err != nil {
		return models.Profile{}, err
	}
	if opts.Kind == timetable.KindTutorial.String() && value != constants.ChoiceNone {
		value = strings.ToUpper(value)
	}
	if !opts.HasValue(value) {
		return models.Profile{}, fmt.Errorf("%w: %q in %s", ErrUnknownOption, value, groupID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.profile.Choice(groupID); ok && current == value {
		return s.profile.Clone(), nil
	}
	next := s.profile.Clone()
	next.Choices[groupID] = value
	logger.Debug("Choice applied", "group", groupID, "value", value)
	return s.persist(next)
}

// RevokeChoice forgets the group's value so queries ask for it again.
func (s *Session) RevokeChoice(groupID string) (models.Profile, error) {
	if _, ok := timetable.ParseGroupID(groupID); !ok {
		return models.Profile{}, fmt.Errorf("%w: %q", ErrInvalidGroup, groupID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profile.Choice(groupID); !ok {
		return s.profile.Clone(), nil
	}
	next := s.profile.Clone()
	delete(next.Choices, groupID)
	logger.Debug("Choice revoked", "group", groupID)
	return s.persist(next)
}

package timetable

import (
	"strings"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
)

// Kind is the shape of a lecture record as far as applicability goes
type Kind int

const (
	KindCommon Kind = iota
	KindSingleBatch
	KindTutorial
	KindElective
	KindMinor
)

func (k Kind) String() string {
	switch k {
	case KindSingleBatch:
		return "lab"
	case KindTutorial:
		return "tutorial"
	case KindElective:
		return "elective"
	case KindMinor:
		return "minor"
	default:
		return "common"
	}
}

// Class is a classified record. Key is the batch for KindSingleBatch, the
// subject for KindTutorial and the group for KindElective and KindMinor.
type Class struct {
	Kind Kind
	Key  string
}

// IsChoice reports whether records of this class need a user decision
func (c Class) IsChoice() bool {
	return c.Kind == KindTutorial || c.Kind == KindElective || c.Kind == KindMinor
}

// Classify derives a record's class from its type tag and batches.
func Classify(l models.Lecture) Class {
	switch l.Type {
	case models.LectureTypeTutorial:
		return Class{Kind: KindTutorial, Key: l.Subject}
	case models.LectureTypeElective:
		return Class{Kind: KindElective, Key: l.ElectiveGroup}
	case models.LectureTypeMinor:
		return Class{Kind: KindMinor, Key: l.MinorGroup}
	}
	if len(l.Batches) == 1 {
		return Class{Kind: KindSingleBatch, Key: l.Batches[0]}
	}
	return Class{Kind: KindCommon}
}

// GroupIDFor returns the namespaced choice-group id of a record, or "" for
// records that are not part of a choice group. Every resolver and the choice
// protocol derive group ids through this function.
func GroupIDFor(l models.Lecture) string {
	return Classify(l).GroupID()
}

// GroupID returns the namespaced id for choice classes, "" otherwise
func (c Class) GroupID() string {
	switch c.Kind {
	case KindTutorial:
		return constants.GroupPrefixTutorial + c.Key
	case KindElective:
		return constants.GroupPrefixElective + c.Key
	case KindMinor:
		return constants.GroupPrefixMinor + c.Key
	}
	return ""
}

// ParseGroupID splits a namespaced group id back into its class. ok is false
// for ids without a known prefix or with an empty key.
func ParseGroupID(groupID string) (Class, bool) {
	for _, p := range []struct {
		prefix string
		kind   Kind
	}{
		{constants.GroupPrefixElective, KindElective},
		{constants.GroupPrefixMinor, KindMinor},
		{constants.GroupPrefixTutorial, KindTutorial},
	} {
		if key, found := strings.CutPrefix(groupID, p.prefix); found && key != "" {
			return Class{Kind: p.kind, Key: key}, true
		}
	}
	return Class{}, false
}

package engine

import (
	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

// ResolveStatus answers "what is my lecture right now" (findNext false) or
// "what is my next lecture" (findNext true) for an HH:MM time on day.
func (e *Engine) ResolveStatus(p models.Profile, day models.Day, t string, findNext bool) Result {
	if !p.HasDivision() {
		return Result{Status: StatusNoDivision}
	}

	schedule := e.PersonalSchedule(p, day)
	if len(schedule) == 0 {
		return Result{Status: StatusNoLecturesToday}
	}

	var next *models.Lecture
	for _, l := range schedule {
		if l.StartTime > t {
			next = ref(l)
			break
		}
	}

	if findNext {
		if next == nil {
			return Result{Status: StatusNoMoreLectures}
		}
		var slot []models.Lecture
		for _, l := range schedule {
			if l.StartTime == next.StartTime {
				slot = append(slot, l)
			}
		}
		return e.resolveSlot(p, slot, next, StatusFoundNext)
	}

	if t < schedule[0].StartTime {
		return Result{Status: StatusCollegeClosedEarly, NextLec: ref(schedule[0])}
	}
	if t >= personalEnd(schedule) {
		return Result{Status: StatusCollegeClosedLate}
	}

	var slot []models.Lecture
	for _, l := range schedule {
		if l.StartTime <= t && t < l.EndTime {
			slot = append(slot, l)
		}
	}
	if len(slot) == 0 {
		return Result{Status: StatusInBreak, NextLec: next}
	}
	return e.resolveSlot(p, slot, next, StatusInLecture)
}

// personalEnd is the latest end time of the day, so a long lab that started
// before the last lecture still keeps the day open.
func personalEnd(schedule []models.Lecture) string {
	end := ""
	for _, l := range schedule {
		if l.EndTime > end {
			end = l.EndTime
		}
	}
	return end
}

// slotOutcome is the collapsed meaning of one slot for a profile, shared by
// status resolution and week assembly.
type slotOutcome struct {
	lecture  *models.Lecture
	groupID  string
	options  []models.Lecture
	pending  bool // choice not made yet
	optedOut bool // choice is NONE
}

func (e *Engine) collapseSlot(p models.Profile, slot []models.Lecture) slotOutcome {
	var choices, plain []models.Lecture
	for _, l := range slot {
		if timetable.Classify(l).IsChoice() {
			choices = append(choices, l)
		} else {
			plain = append(plain, l)
		}
	}

	if len(choices) > 0 {
		groupID := timetable.GroupIDFor(choices[0])
		var group []models.Lecture
		for _, l := range choices {
			if timetable.GroupIDFor(l) == groupID {
				group = append(group, l)
			}
		}

		value, ok := p.Choice(groupID)
		switch {
		case !ok || value == "":
			return slotOutcome{groupID: groupID, options: group, pending: true}
		case value == constants.ChoiceNone:
			return slotOutcome{groupID: groupID, options: group, optedOut: true}
		}
		if m, found := matchChoice(group, value); found {
			return slotOutcome{lecture: ref(m), groupID: groupID}
		}
		// stale choice: the value no longer exists in this slot
	}

	if l, found := pickPlain(plain, p); found {
		return slotOutcome{lecture: ref(l)}
	}
	return slotOutcome{}
}

func (e *Engine) resolveSlot(p models.Profile, slot []models.Lecture, next *models.Lecture, success Status) Result {
	out := e.collapseSlot(p, slot)
	switch {
	case out.pending:
		return Result{Status: StatusChoiceRequired, GroupID: out.groupID, Options: out.options}
	case out.optedOut:
		status := StatusInBreak
		if e.opts.ReportOptOut {
			status = StatusChoiceMadeNone
		}
		return Result{Status: status, NextLec: next, GroupID: out.groupID}
	case out.lecture != nil:
		return Result{Status: success, Lecture: out.lecture, GroupID: out.groupID}
	}
	return Result{Status: StatusInBreak, NextLec: next}
}

// matchChoice finds the group record selected by a stored value: tutorials
// by batch, electives and minors by subject or custom group.
func matchChoice(group []models.Lecture, value string) (models.Lecture, bool) {
	for _, l := range group {
		if timetable.Classify(l).Kind == timetable.KindTutorial {
			if l.HasBatch(value) {
				return l, true
			}
			continue
		}
		if l.Subject == value || (l.CustomGroup != "" && l.CustomGroup == value) {
			return l, true
		}
	}
	return models.Lecture{}, false
}

// pickPlain prefers the profile's own lab over a shared lecture; otherwise
// the first applicable record in table order wins.
func pickPlain(plain []models.Lecture, p models.Profile) (models.Lecture, bool) {
	for _, l := range plain {
		if c := timetable.Classify(l); c.Kind == timetable.KindSingleBatch && p.LabBatch != "" && c.Key == p.LabBatch {
			return l, true
		}
	}
	for _, l := range plain {
		if applicable(l, p) {
			return l, true
		}
	}
	return models.Lecture{}, false
}

package engine

import (
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

// FullSchedule assembles Monday through Saturday for the profile.
func (e *Engine) FullSchedule(p models.Profile) Week {
	week := make(Week, 0, len(models.SchoolDays))
	for _, day := range models.SchoolDays {
		week = append(week, e.DaySchedule(p, day))
	}
	return week
}

// DaySchedule collapses each slot of the personal schedule to one entry and
// fills the gaps between entries with breaks.
func (e *Engine) DaySchedule(p models.Profile, day models.Day) DaySchedule {
	ds := DaySchedule{Day: day, Entries: []ScheduleEntry{}}
	schedule := e.PersonalSchedule(p, day)

	var entries []ScheduleEntry
	for i := 0; i < len(schedule); {
		j := i
		for j < len(schedule) && schedule[j].StartTime == schedule[i].StartTime {
			j++
		}
		if entry, ok := e.slotEntry(p, day, schedule[i:j]); ok {
			entries = append(entries, entry)
		}
		i = j
	}

	latest := ""
	for _, entry := range entries {
		if latest != "" && latest < entry.Start {
			ds.Entries = append(ds.Entries, ScheduleEntry{Kind: EntryBreak, Start: latest, End: entry.Start})
		}
		ds.Entries = append(ds.Entries, entry)
		if entry.End > latest {
			latest = entry.End
		}
	}
	return ds
}

func (e *Engine) slotEntry(p models.Profile, day models.Day, slot []models.Lecture) (ScheduleEntry, bool) {
	start := slot[0].StartTime
	out := e.collapseSlot(p, slot)

	switch {
	case out.pending, out.optedOut:
		kind := EntryPlaceholder
		if out.optedOut {
			kind = EntrySkipped
		}
		return ScheduleEntry{
			Kind:    kind,
			Start:   start,
			End:     latestEnd(out.options),
			GroupID: out.groupID,
			Options: out.options,
		}, true
	case out.lecture != nil:
		entry := ScheduleEntry{
			Kind:    EntryLecture,
			Start:   start,
			End:     out.lecture.EndTime,
			Lecture: out.lecture,
			GroupID: out.groupID,
		}
		if timetable.Classify(*out.lecture).Kind == timetable.KindSingleBatch {
			entry.OtherLabs = e.otherLabs(p, day, *out.lecture)
		}
		return entry, true
	}
	return ScheduleEntry{}, false
}

// otherLabs lists the division's concurrent labs for the other batches.
func (e *Engine) otherLabs(p models.Profile, day models.Day, own models.Lecture) []models.Lecture {
	var out []models.Lecture
	for _, l := range e.store.LecturesOn(day) {
		if l.Seq == own.Seq || l.StartTime != own.StartTime || !l.HasDivision(p.Division) {
			continue
		}
		if timetable.Classify(l).Kind == timetable.KindSingleBatch {
			out = append(out, l)
		}
	}
	return out
}

func latestEnd(lectures []models.Lecture) string {
	end := ""
	for _, l := range lectures {
		if l.EndTime > end {
			end = l.EndTime
		}
	}
	return end
}

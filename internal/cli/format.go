package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
	"github.com/julianstephens/lectern/internal/utils"
)

// FormatLecture renders one lecture as "09:00–10:00  Maths · Anita Rao · 101".
func FormatLecture(store *timetable.Store, l models.Lecture) string {
	parts := []string{l.Subject}
	if l.TeacherID != "" {
		parts = append(parts, store.TeacherName(l.TeacherID))
	}
	parts = append(parts, timetable.RoomInfo(l.RoomID))
	return fmt.Sprintf("%s–%s  %s", l.StartTime, l.EndTime, strings.Join(parts, " · "))
}

// FormatResult turns a status result into the lines the CLI prints.
func FormatResult(store *timetable.Store, res engine.Result, t string) []string {
	switch res.Status {
	case engine.StatusNoDivision:
		return []string{"No division set. Run 'lectern setup' first."}
	case engine.StatusNoLecturesToday:
		return []string{"No lectures today."}
	case engine.StatusNoMoreLectures:
		return []string{"No more lectures today."}
	case engine.StatusCollegeClosedLate:
		return []string{"College is over for today."}
	case engine.StatusCollegeClosedEarly:
		return append([]string{"College hasn't started yet."}, upcoming(store, res.NextLec, t)...)
	case engine.StatusInBreak:
		return append([]string{"On a break."}, upcoming(store, res.NextLec, t)...)
	case engine.StatusChoiceMadeNone:
		return append([]string{fmt.Sprintf("Skipping %s.", res.GroupID)}, upcoming(store, res.NextLec, t)...)
	case engine.StatusChoiceRequired:
		lines := []string{fmt.Sprintf("Choice required for %s:", res.GroupID)}
		for _, l := range res.Options {
			lines = append(lines, "  "+FormatLecture(store, l))
		}
		return append(lines, fmt.Sprintf("Run 'lectern choice set %s <value>' to decide.", res.GroupID))
	case engine.StatusInLecture:
		left := utils.MinutesUntil(t, res.Lecture.EndTime)
		return []string{
			"Now: " + FormatLecture(store, *res.Lecture),
			fmt.Sprintf("Ends in %d min.", left),
		}
	case engine.StatusFoundNext:
		return append([]string{"Next: " + FormatLecture(store, *res.Lecture)}, startsIn(res.Lecture, t)...)
	}
	return []string{string(res.Status)}
}

func upcoming(store *timetable.Store, next *models.Lecture, t string) []string {
	if next == nil {
		return nil
	}
	return append([]string{"Next: " + FormatLecture(store, *next)}, startsIn(next, t)...)
}

func startsIn(l *models.Lecture, t string) []string {
	if mins := utils.MinutesUntil(t, l.StartTime); mins > 0 {
		return []string{fmt.Sprintf("Starts in %d min.", mins)}
	}
	return nil
}

// FormatEntry renders one row of a day schedule.
func FormatEntry(store *timetable.Store, e engine.ScheduleEntry) string {
	switch e.Kind {
	case engine.EntryBreak:
		return fmt.Sprintf("%s–%s  break", e.Start, e.End)
	case engine.EntryPlaceholder:
		return fmt.Sprintf("%s–%s  [choose %s: %d options]", e.Start, e.End, e.GroupID, len(e.Options))
	case engine.EntrySkipped:
		return fmt.Sprintf("%s–%s  (skipped %s)", e.Start, e.End, e.GroupID)
	}
	line := FormatLecture(store, *e.Lecture)
	if len(e.OtherLabs) > 0 {
		var others []string
		for _, l := range e.OtherLabs {
			others = append(others, fmt.Sprintf("%s: %s", strings.Join(l.Batches, ","), l.Subject))
		}
		line += "  (other batches: " + strings.Join(others, "; ") + ")"
	}
	return line
}

// Package engine resolves scheduling questions against an immutable
// timetable and a profile. Every exported query is a pure function of its
// inputs; nothing here mutates the store or the profile.
package engine

import (
	"sort"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

// Options configures the engine.
type Options struct {
	// DayStart and DayEnd bound the operating window [DayStart, DayEnd)
	// used by teacher lookups.
	DayStart string
	DayEnd   string
	// ReportOptOut makes an opted-out choice resolve to CHOICE_MADE_NONE
	// instead of IN_BREAK.
	ReportOptOut bool
}

type Engine struct {
	store *timetable.Store
	opts  Options
}

func New(store *timetable.Store, opts Options) *Engine {
	if opts.DayStart == "" {
		opts.DayStart = constants.DefaultDayStart
	}
	if opts.DayEnd == "" {
		opts.DayEnd = constants.DefaultDayEnd
	}
	return &Engine{store: store, opts: opts}
}

func (e *Engine) Store() *timetable.Store { return e.store }

func (e *Engine) Options() Options { return e.opts }

// applicable reports whether a record of the profile's division concerns
// this particular student.
func applicable(l models.Lecture, p models.Profile) bool {
	c := timetable.Classify(l)
	switch c.Kind {
	case timetable.KindCommon, timetable.KindElective, timetable.KindMinor:
		return true
	case timetable.KindSingleBatch:
		return p.LabBatch != "" && c.Key == p.LabBatch
	case timetable.KindTutorial:
		return p.TutorialBatch != "" && l.HasBatch(p.TutorialBatch)
	}
	return false
}

// PersonalSchedule returns the day's records that apply to the profile,
// ordered by start time with ties kept in table order.
func (e *Engine) PersonalSchedule(p models.Profile, day models.Day) []models.Lecture {
	if !p.HasDivision() {
		return nil
	}
	var out []models.Lecture
	for _, l := range e.store.LecturesOn(day) {
		if l.HasDivision(p.Division) && applicable(l, p) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

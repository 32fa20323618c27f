package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/utils"
)

// ConflictType identifies what is wrong with a record
type ConflictType string

const (
	ConflictMissingField     ConflictType = "missing_field"
	ConflictInvalidValue     ConflictType = "invalid_value"
	ConflictInvalidTime      ConflictType = "invalid_time"
	ConflictInvalidDay       ConflictType = "invalid_day"
	ConflictEmptyInterval    ConflictType = "empty_interval"
	ConflictUnknownTeacher   ConflictType = "unknown_teacher"
	ConflictUnknownRoom      ConflictType = "unknown_room"
	ConflictDuplicateID      ConflictType = "duplicate_id"
	ConflictInvalidSettings  ConflictType = "invalid_settings"
	ConflictEmptyTimetable   ConflictType = "empty_timetable"
	ConflictAmbiguousCommons ConflictType = "ambiguous_common_lectures"
)

// Severity decides whether a conflict stops startup
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Conflict is one data-quality problem found in the loaded tables
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Source      string // timetable, teachers, rooms or settings
	Index       int    // record position in its source, -1 when not applicable
	Description string
}

// ValidationResult collects every conflict found in one pass
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict is fatal
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the fatal conflicts
func (vr *ValidationResult) Errors() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			out = append(out, c)
		}
	}
	return out
}

// Warnings returns only the non-fatal conflicts
func (vr *ValidationResult) Warnings() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityWarning {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Severity, c.Description)
	}
	return b.String()
}

// Err folds the fatal conflicts into one error, or returns nil
func (vr *ValidationResult) Err() error {
	errs := vr.Errors()
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, 0, len(errs))
	for _, c := range errs {
		joined = append(joined, errors.New(c.Description))
	}
	return fmt.Errorf("%d invalid record(s): %w", len(errs), errors.Join(joined...))
}

// Validator checks timetable tables and request bodies
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the lectern-specific tags registered:
// "hhmm" (zero-padded 24h time) and "schoolday" (Monday..Saturday).
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) == 5 && utils.ValidateTimeFormat(s)
	})
	_ = v.RegisterValidation("schoolday", func(fl validator.FieldLevel) bool {
		return models.Day(fl.Field().String()).IsSchoolDay()
	})
	return &Validator{v: v}
}

// Struct validates any tagged struct, such as an API request body
func (v *Validator) Struct(s any) error {
	return v.v.Struct(s)
}

// FieldMessages flattens a validator error into "field: problem" strings
func FieldMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, describeField(fe))
	}
	return out
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s needs at least %s entr(ies)", fe.Field(), fe.Param())
	case "hhmm":
		return fmt.Sprintf("%s must be HH:MM, got %q", fe.Field(), fe.Value())
	case "schoolday":
		return fmt.Sprintf("%s must be Monday to Saturday, got %q", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func conflictTypeFor(tag string) ConflictType {
	switch tag {
	case "required", "required_if", "min":
		return ConflictMissingField
	case "hhmm":
		return ConflictInvalidTime
	case "schoolday":
		return ConflictInvalidDay
	default:
		return ConflictInvalidValue
	}
}

func (v *Validator) structConflicts(result *ValidationResult, source string, index int, label string, record any) {
	err := v.v.Struct(record)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.add(Conflict{Type: ConflictInvalidValue, Severity: SeverityError, Source: source, Index: index,
			Description: fmt.Sprintf("%s: %v", label, err)})
		return
	}
	for _, fe := range verrs {
		result.add(Conflict{
			Type:        conflictTypeFor(fe.Tag()),
			Severity:    SeverityError,
			Source:      source,
			Index:       index,
			Description: fmt.Sprintf("%s: %s", label, describeField(fe)),
		})
	}
}

// ValidateTables checks every record and the references between tables.
// Malformed records are errors; dangling references and duplicate ids are
// warnings because the resolvers degrade gracefully around them.
func (v *Validator) ValidateTables(lectures []models.Lecture, teachers []models.Teacher, rooms []models.Room) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if len(lectures) == 0 {
		result.add(Conflict{Type: ConflictEmptyTimetable, Severity: SeverityError, Source: "timetable", Index: -1,
			Description: "timetable contains no lectures"})
	}

	roomIDs := make(map[string]bool, len(rooms))
	for i, r := range rooms {
		v.structConflicts(&result, "rooms", i, fmt.Sprintf("room #%d", i+1), r)
		if roomIDs[r.ID] {
			result.add(Conflict{Type: ConflictDuplicateID, Severity: SeverityWarning, Source: "rooms", Index: i,
				Description: fmt.Sprintf("room %q is listed more than once", r.ID)})
		}
		roomIDs[r.ID] = true
	}

	teacherIDs := make(map[string]bool, len(teachers))
	for i, t := range teachers {
		v.structConflicts(&result, "teachers", i, fmt.Sprintf("teacher #%d", i+1), t)
		if teacherIDs[t.ID] {
			result.add(Conflict{Type: ConflictDuplicateID, Severity: SeverityWarning, Source: "teachers", Index: i,
				Description: fmt.Sprintf("teacher %q is listed more than once", t.ID)})
		}
		teacherIDs[t.ID] = true
		if t.CabinRoomID != "" && len(rooms) > 0 && !roomIDs[t.CabinRoomID] {
			result.add(Conflict{Type: ConflictUnknownRoom, Severity: SeverityWarning, Source: "teachers", Index: i,
				Description: fmt.Sprintf("teacher %q has unknown cabin room %q", t.ID, t.CabinRoomID)})
		}
	}

	for i, l := range lectures {
		label := fmt.Sprintf("lecture #%d (%s %s %s)", i+1, l.Day, l.StartTime, l.Subject)
		v.structConflicts(&result, "timetable", i, label, l)

		if len(l.StartTime) == 5 && len(l.EndTime) == 5 && l.EndTime <= l.StartTime {
			result.add(Conflict{Type: ConflictEmptyInterval, Severity: SeverityError, Source: "timetable", Index: i,
				Description: fmt.Sprintf("%s: endTime %s is not after startTime %s", label, l.EndTime, l.StartTime)})
		}
		if l.TeacherID != "" && len(teachers) > 0 && !teacherIDs[l.TeacherID] {
			result.add(Conflict{Type: ConflictUnknownTeacher, Severity: SeverityWarning, Source: "timetable", Index: i,
				Description: fmt.Sprintf("%s: unknown teacher %q", label, l.TeacherID)})
		}
		for _, id := range l.RoomID {
			if id != "" && len(rooms) > 0 && !roomIDs[id] {
				result.add(Conflict{Type: ConflictUnknownRoom, Severity: SeverityWarning, Source: "timetable", Index: i,
					Description: fmt.Sprintf("%s: unknown room %q", label, id)})
			}
		}
	}

	v.checkCommonLectures(&result, lectures)
	return result
}

// checkCommonLectures warns when a division has two whole-division lectures
// in one slot; resolution then falls back to table order.
func (v *Validator) checkCommonLectures(result *ValidationResult, lectures []models.Lecture) {
	type slotKey struct {
		day      models.Day
		start    string
		division string
	}
	seen := map[slotKey]int{}
	for i, l := range lectures {
		if l.Type != models.LectureTypeNone || len(l.Batches) == 1 {
			continue
		}
		for _, d := range l.Divisions {
			key := slotKey{l.Day, l.StartTime, d}
			if first, ok := seen[key]; ok {
				result.add(Conflict{Type: ConflictAmbiguousCommons, Severity: SeverityWarning, Source: "timetable", Index: i,
					Description: fmt.Sprintf("division %s has two common lectures on %s at %s (records #%d and #%d)", d, l.Day, l.StartTime, first+1, i+1)})
				continue
			}
			seen[key] = i
		}
	}
}

// ValidateSettings checks stored settings before they are saved
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	bad := func(format string, args ...any) {
		result.add(Conflict{Type: ConflictInvalidSettings, Severity: SeverityError, Source: "settings", Index: -1,
			Description: fmt.Sprintf(format, args...)})
	}

	if !utils.ValidateTimeFormat(s.DayStart) {
		bad("day_start %q must be HH:MM", s.DayStart)
	}
	if !utils.ValidateTimeFormat(s.DayEnd) {
		bad("day_end %q must be HH:MM", s.DayEnd)
	}
	if !result.HasConflicts() {
		start, _ := utils.NormalizeTime(s.DayStart)
		end, _ := utils.NormalizeTime(s.DayEnd)
		if end <= start {
			bad("day_end %s must be after day_start %s", s.DayEnd, s.DayStart)
		}
	}
	if !utils.ValidateTimezone(s.Timezone) {
		bad("timezone %q is not a known IANA zone", s.Timezone)
	}
	for name, src := range map[string]string{
		"timetable_source": s.TimetableSource,
		"teachers_source":  s.TeachersSource,
		"rooms_source":     s.RoomsSource,
	} {
		if strings.TrimSpace(src) == "" {
			bad("%s cannot be empty", name)
		}
	}
	return result
}

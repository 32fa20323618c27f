package engine

import "github.com/julianstephens/lectern/internal/models"

// FindTeacherLocation reports where a teacher is at (day, t): outside the
// operating window nobody is on campus, otherwise they are either teaching
// or in their cabin.
func (e *Engine) FindTeacherLocation(teacherID string, day models.Day, t string) TeacherResult {
	teacher, ok := e.store.Teacher(teacherID)
	if !ok {
		return TeacherResult{Status: TeacherNotFound}
	}
	if t < e.opts.DayStart || t >= e.opts.DayEnd {
		return TeacherResult{Status: TeacherOutsideHours, Teacher: &teacher}
	}
	for _, l := range e.store.LecturesOn(day) {
		if l.TeacherID == teacherID && l.ActiveAt(day, t) {
			return TeacherResult{Status: TeacherInLecture, Teacher: &teacher, Lecture: ref(l)}
		}
	}
	return TeacherResult{Status: TeacherInCabin, Teacher: &teacher, CabinRoomID: teacher.CabinRoomID}
}

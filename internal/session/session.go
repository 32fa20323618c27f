// Package session owns the single user profile at runtime. It is the only
// writer of the profile, and every query goes through it so the CLI, the
// TUI and the local API see the same state.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/storage"
	"github.com/julianstephens/lectern/internal/utils"
)

var (
	ErrDivisionRequired = errors.New("division is required")
	ErrUnknownDivision  = errors.New("unknown division")
)

// Query is a status question pinned to a day and time
type Query struct {
	Day      models.Day
	Time     string
	FindNext bool
}

type Option func(*Session)

// WithClock sets the clock used by the *Now helpers.
func WithClock(c utils.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithBeforeReset registers a hook that runs before the profile is deleted,
// typically an automatic backup. A failing hook aborts the reset.
func WithBeforeReset(fn func() error) Option {
	return func(s *Session) { s.beforeReset = fn }
}

type Session struct {
	mu          sync.RWMutex
	engine      *engine.Engine
	store       storage.Provider
	clock       utils.Clock
	beforeReset func() error

	profile models.Profile
}

// New loads the stored profile and returns a session bound to it.
func New(eng *engine.Engine, store storage.Provider, opts ...Option) (*Session, error) {
	profile, err := storage.LoadProfile(store)
	if err != nil {
		return nil, err
	}
	s := &Session{
		engine:  eng,
		store:   store,
		clock:   utils.SystemClock{},
		profile: profile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Engine() *engine.Engine { return s.engine }

// Profile returns a copy of the current profile.
func (s *Session) Profile() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Now returns the current weekday and HH:MM from the session clock.
func (s *Session) Now() (models.Day, string) {
	return utils.DayAndTime(s.clock.Now())
}

// SaveDetails stores the division and batches. Batches are upper-cased and
// a change of division clears every stored choice.
func (s *Session) SaveDetails(division, labBatch, tutorialBatch string) (models.Profile, error) {
	division = strings.TrimSpace(division)
	if division == "" {
		return models.Profile{}, ErrDivisionRequired
	}
	if known := s.engine.Store().Divisions(); len(known) > 0 && !slices.Contains(known, division) {
		return models.Profile{}, fmt.Errorf("%w: %s", ErrUnknownDivision, division)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.profile.Clone()
	if next.ID == "" {
		next.ID = uuid.NewString()
	}
	if next.Division != division {
		if len(next.Choices) > 0 {
			logger.Info("Division changed, clearing choices", "from", next.Division, "to", division, "cleared", len(next.Choices))
		}
		next.Choices = map[string]string{}
	}
	next.Division = division
	next.LabBatch = strings.ToUpper(strings.TrimSpace(labBatch))
	next.TutorialBatch = strings.ToUpper(strings.TrimSpace(tutorialBatch))

	return s.persist(next)
}

// Reset deletes the stored profile after running the before-reset hook.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.beforeReset != nil {
		if err := s.beforeReset(); err != nil {
			return fmt.Errorf("pre-reset backup failed: %w", err)
		}
	}
	if err := storage.DeleteProfile(s.store); err != nil {
		return err
	}
	s.profile = models.Profile{Choices: map[string]string{}}
	return nil
}

// persist must be called with mu held.
func (s *Session) persist(p models.Profile) (models.Profile, error) {
	saved, err := storage.SaveProfile(s.store, p)
	if err != nil {
		return models.Profile{}, err
	}
	s.profile = saved
	return saved.Clone(), nil
}

// Status resolves the current (or next) lecture at an explicit day and time.
func (s *Session) Status(day models.Day, t string, findNext bool) engine.Result {
	return s.engine.ResolveStatus(s.Profile(), day, t, findNext)
}

// StatusNow resolves against the session clock.
func (s *Session) StatusNow(findNext bool) engine.Result {
	day, t := s.Now()
	return s.Status(day, t, findNext)
}

func (s *Session) Week() engine.Week {
	return s.engine.FullSchedule(s.Profile())
}

func (s *Session) Day(day models.Day) engine.DaySchedule {
	return s.engine.DaySchedule(s.Profile(), day)
}

func (s *Session) EmptyRooms(day models.Day, t string, filter engine.RoomFilter) engine.EmptyRooms {
	return s.engine.FindEmptyRooms(day, t, filter)
}

func (s *Session) RoomStatus(roomID string, day models.Day, t string) engine.RoomResult {
	return s.engine.FindRoomStatus(roomID, day, t)
}

// TeacherLocation accepts a teacher id or a (partial) name.
func (s *Session) TeacherLocation(query string, day models.Day, t string) engine.TeacherResult {
	id := query
	if teacher, ok := s.engine.Store().FindTeacher(query); ok {
		id = teacher.ID
	}
	return s.engine.FindTeacherLocation(id, day, t)
}

package timetable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lectern/internal/config"
	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/utils"
	"github.com/julianstephens/lectern/internal/validation"
)

var (
	// ErrSourceUnavailable wraps any failure to read or decode one of the three tables.
	ErrSourceUnavailable = errors.New("timetable source unavailable")
	// ErrInvalidTimetable is returned when load-time validation finds errors.
	ErrInvalidTimetable = errors.New("timetable failed validation")
)

const fetchTimeout = 15 * time.Second

// stringList decodes either a single string or a list of strings, since
// hand-written timetables use both for roomId, divisions and batches.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = splitNonEmpty(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = splitNonEmpty(node.Value)
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*s = many
	return nil
}

func splitNonEmpty(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return []string{v}
}

type rawLecture struct {
	Day           string     `json:"day" yaml:"day"`
	StartTime     string     `json:"startTime" yaml:"startTime"`
	EndTime       string     `json:"endTime" yaml:"endTime"`
	Divisions     stringList `json:"divisions" yaml:"divisions"`
	Subject       string     `json:"subject" yaml:"subject"`
	TeacherID     string     `json:"teacherId" yaml:"teacherId"`
	RoomID        stringList `json:"roomId" yaml:"roomId"`
	Type          string     `json:"type" yaml:"type"`
	Batches       stringList `json:"batches" yaml:"batches"`
	ElectiveGroup string     `json:"electiveGroup" yaml:"electiveGroup"`
	MinorGroup    string     `json:"minorGroup" yaml:"minorGroup"`
	CustomGroup   string     `json:"customGroup" yaml:"customGroup"`
}

// Loader fetches and decodes the three timetable tables.
type Loader struct {
	Client    *http.Client
	Validator *validation.Validator
}

func NewLoader() *Loader {
	return &Loader{
		Client:    &http.Client{Timeout: fetchTimeout},
		Validator: validation.New(),
	}
}

// Load reads the three sources concurrently; the first failure cancels the
// others. Validation errors fail the load, warnings are returned alongside
// the store and logged.
func (ld *Loader) Load(ctx context.Context, src config.Sources) (*Store, validation.ValidationResult, error) {
	var (
		raw      []rawLecture
		teachers []models.Teacher
		rooms    []models.Room
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ld.decode(gctx, src.Timetable, &raw) })
	g.Go(func() error { return ld.decode(gctx, src.Teachers, &teachers) })
	g.Go(func() error { return ld.decode(gctx, src.Rooms, &rooms) })
	if err := g.Wait(); err != nil {
		return nil, validation.ValidationResult{}, err
	}

	lectures := make([]models.Lecture, len(raw))
	for i, r := range raw {
		lectures[i] = normalizeLecture(r)
	}
	for i := range teachers {
		teachers[i].ID = strings.TrimSpace(teachers[i].ID)
		teachers[i].CabinRoomID = strings.TrimSpace(teachers[i].CabinRoomID)
	}
	for i := range rooms {
		rooms[i].ID = strings.TrimSpace(rooms[i].ID)
	}

	result := ld.Validator.ValidateTables(lectures, teachers, rooms)
	for _, w := range result.Warnings() {
		logger.Warn("Timetable warning", "source", w.Source, "problem", w.Description)
	}
	if err := result.Err(); err != nil {
		return nil, result, fmt.Errorf("%w: %w", ErrInvalidTimetable, err)
	}

	logger.Info("Timetable loaded", "lectures", len(lectures), "teachers", len(teachers), "rooms", len(rooms))
	return NewStore(lectures, teachers, rooms), result, nil
}

// Load is a convenience wrapper around NewLoader().Load.
func Load(ctx context.Context, src config.Sources) (*Store, validation.ValidationResult, error) {
	return NewLoader().Load(ctx, src)
}

func (ld *Loader) decode(ctx context.Context, source string, out any) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("%w: no location configured", ErrSourceUnavailable)
	}
	data, isYAML, err := ld.read(ctx, source)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, source, err)
	}

	if isYAML {
		err = yaml.Unmarshal(data, out)
	} else {
		err = json.Unmarshal(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), out)
	}
	if err != nil {
		return fmt.Errorf("%w: %s is malformed: %w", ErrSourceUnavailable, source, err)
	}
	return nil
}

func (ld *Loader) read(ctx context.Context, source string) ([]byte, bool, error) {
	if !config.IsURL(source) {
		data, err := os.ReadFile(source)
		return data, isYAMLPath(source), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := ld.Client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}

	isYAML := strings.Contains(resp.Header.Get("Content-Type"), "yaml")
	if u, err := url.Parse(source); err == nil && isYAMLPath(u.Path) {
		isYAML = true
	}
	return data, isYAML, nil
}

func isYAMLPath(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

// upperAll canonicalizes batch ids, which profiles store upper-cased.
func upperAll(in []string) []string {
	out := trimAll(in)
	for i, v := range out {
		out[i] = strings.ToUpper(v)
	}
	return out
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// normalizeLecture canonicalizes what the resolvers compare on: day names,
// zero-padded times, upper-cased batches and the type tag. Values that cannot be normalized are
// kept verbatim so validation can report them.
func normalizeLecture(r rawLecture) models.Lecture {
	l := models.Lecture{
		Day:           models.Day(strings.TrimSpace(r.Day)),
		StartTime:     strings.TrimSpace(r.StartTime),
		EndTime:       strings.TrimSpace(r.EndTime),
		Divisions:     trimAll(r.Divisions),
		Subject:       strings.TrimSpace(r.Subject),
		TeacherID:     strings.TrimSpace(r.TeacherID),
		RoomID:        trimAll(r.RoomID),
		Type:          models.LectureType(strings.ToLower(strings.TrimSpace(r.Type))),
		Batches:       upperAll(r.Batches),
		ElectiveGroup: strings.TrimSpace(r.ElectiveGroup),
		MinorGroup:    strings.TrimSpace(r.MinorGroup),
		CustomGroup:   strings.TrimSpace(r.CustomGroup),
	}
	if d, err := models.ParseDay(r.Day); err == nil {
		l.Day = d
	}
	if t, err := utils.NormalizeTime(r.StartTime); err == nil {
		l.StartTime = t
	}
	if t, err := utils.NormalizeTime(r.EndTime); err == nil {
		l.EndTime = t
	}
	// Labs are encoded by their batches; the tag itself carries no meaning.
	if l.Type == models.LectureTypeLab {
		l.Type = models.LectureTypeNone
	}
	return l
}

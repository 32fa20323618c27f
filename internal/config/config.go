// Package config resolves runtime configuration from flags, the environment
// (optionally seeded from a .env file), stored settings and defaults, in that
// order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/models"
)

// Sources locates the three timetable documents. Each entry is a file path
// or an http(s) URL.
type Sources struct {
	Timetable string
	Teachers  string
	Rooms     string
}

// Overrides carries values given on the command line. Empty fields defer to
// the next layer.
type Overrides struct {
	Timetable string
	Teachers  string
	Rooms     string
	Timezone  string
}

// Config is the fully resolved runtime configuration.
type Config struct {
	Sources      Sources
	Timezone     string
	DayStart     string
	DayEnd       string
	ReportOptOut bool
}

// LoadEnv reads .env files into the process environment without overriding
// variables that are already set. Missing files are not an error.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Warn("Failed to load env file", "path", p, "error", err)
			continue
		}
		logger.Debug("Loaded env file", "path", p)
	}
}

// GetEnv returns the variable's value, or the first default when it is unset.
func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// Resolve layers overrides, environment and stored settings. Relative paths
// coming from settings or defaults are taken relative to configDir; flag and
// environment values are used as given.
func Resolve(o Overrides, settings models.Settings, configDir string) Config {
	models.ApplyDefaultSettings(&settings)

	pick := func(flag, env, stored string) string {
		if flag != "" {
			return flag
		}
		if v := strings.TrimSpace(GetEnv(env)); v != "" {
			return v
		}
		return anchor(stored, configDir)
	}

	tz := o.Timezone
	if tz == "" {
		tz = GetEnv(constants.EnvTimezone, settings.Timezone)
	}

	return Config{
		Sources: Sources{
			Timetable: pick(o.Timetable, constants.EnvTimetable, settings.TimetableSource),
			Teachers:  pick(o.Teachers, constants.EnvTeachers, settings.TeachersSource),
			Rooms:     pick(o.Rooms, constants.EnvRooms, settings.RoomsSource),
		},
		Timezone: tz,
		DayStart:     settings.DayStart,
		DayEnd:       settings.DayEnd,
		ReportOptOut: settings.ReportOptOut,
	}
}

// IsURL reports whether a source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func anchor(source, dir string) string {
	if source == "" || IsURL(source) || filepath.IsAbs(source) || dir == "" {
		return source
	}
	return filepath.Join(dir, source)
}

// DBConnection returns the connection string from the environment, if any.
func DBConnection() string {
	return strings.TrimSpace(GetEnv(constants.EnvDBConnection))
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

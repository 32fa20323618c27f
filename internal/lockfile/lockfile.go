// Package lockfile keeps two lectern processes from writing the profile at
// the same time.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/logger"
)

var ErrLocked = errors.New("another lectern process holds the lock")

var (
	findProcessFunc = ps.FindProcess
	currentPID      = os.Getpid
)

// Holder describes the process recorded in a lockfile.
type Holder struct {
	PID     int
	Command string
}

// Lock is a held lockfile. Release it when the process is done writing.
type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire writes "pid|command" to the lockfile in dir. A lockfile whose
// process is gone, or belongs to something other than lectern, is stale and
// gets replaced.
func Acquire(dir, command string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)
	pid := currentPID()

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d|%s", pid, command)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, live := Inspect(path)
		if live && holder.PID != pid {
			return nil, fmt.Errorf("%w (pid %d, %s)", ErrLocked, holder.PID, holder.Command)
		}
		logger.Debug("Removing stale lockfile", "path", path, "pid", holder.PID)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, ErrLocked
}

// Inspect reads a lockfile and reports whether its holder is a running
// lectern process.
func Inspect(path string) (Holder, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, false
	}
	pidText, command, _ := strings.Cut(strings.TrimSpace(string(content)), "|")
	pid, err := strconv.Atoi(pidText)
	if err != nil || pid <= 0 {
		return Holder{}, false
	}
	holder := Holder{PID: pid, Command: command}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return holder, false
	}
	return holder, strings.HasPrefix(process.Executable(), constants.AppName)
}

// Release removes the lockfile if it still records this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	pidText, _, _ := strings.Cut(string(content), "|")
	if pidText != strconv.Itoa(l.pid) {
		return nil
	}
	return os.Remove(l.path)
}

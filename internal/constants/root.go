package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "lectern"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lectern/lectern.db"
	Version            = "v0.3.0"

	// ProfileKey is the single store key holding the serialized profile
	ProfileKey = "profile"

	// ChoiceNone is the stored value for an opted-out choice group
	ChoiceNone = "NONE"

	// Choice group id prefixes
	GroupPrefixElective = "elective_"
	GroupPrefixMinor    = "minor_"
	GroupPrefixTutorial = "tutorial_"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lectern-"
	BackupFileSuffix = ".db"

	// Lockfile constants
	LockfileName = "lectern.lock"

	// RefreshInterval drives the live status view
	RefreshInterval = time.Second

	// Default local API address
	DefaultServeAddr = "127.0.0.1:8787"
)

// Session States
const (
	StateNow SessionState = iota
	StateSchedule
	StateRooms
	StateTeachers
	StateSetup
	StateChoice
	StateManual
	StateConfirmReset
)

package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/x/term"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/cli/backups"
	"github.com/julianstephens/lectern/internal/cli/lectures"
	"github.com/julianstephens/lectern/internal/cli/profile"
	"github.com/julianstephens/lectern/internal/cli/settings"
	"github.com/julianstephens/lectern/internal/cli/system"
	"github.com/julianstephens/lectern/internal/config"
	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/errors"
	"github.com/julianstephens/lectern/internal/keyring"
	"github.com/julianstephens/lectern/internal/logger"
	"github.com/julianstephens/lectern/internal/storage"
	"github.com/julianstephens/lectern/internal/storage/postgres"
	"github.com/julianstephens/lectern/internal/storage/sqlite"
)

// keyringConfig selects the connection string stored in the OS keyring.
const keyringConfig = "keyring"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store path (.db for SQLite, .json for a JSON file), a PostgreSQL connection string, or 'keyring'. PostgreSQL credentials must NOT be embedded here; use LECTERN_DB_CONNECTION, .pgpass, or the OS keyring." default:"${config_path}"`
	Verbose bool   `short:"v" help:"Log debug output to stderr."`

	TimetableSource string `name:"timetable" help:"Lecture table path or URL (overrides LECTERN_TIMETABLE and settings)."`
	TeachersSource  string `name:"teachers-source" help:"Teacher table path or URL (overrides LECTERN_TEACHERS and settings)."`
	RoomsSource     string `name:"rooms-source" help:"Room table path or URL (overrides LECTERN_ROOMS and settings)."`
	Timezone        string `help:"IANA timezone used for the current day and time."`

	Init     system.InitCmd     `cmd:"" help:"Initialize lectern storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Validate the timetable sources and settings."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve    system.ServeCmd    `cmd:"" help:"Serve the read/write JSON API."`

	Setup   profile.SetupCmd `cmd:"" help:"Set your division and batches."`
	Profile profile.ShowCmd  `cmd:"" help:"Show your stored profile."`
	Reset   profile.ResetCmd `cmd:"" help:"Delete your profile and choices."`
	Choice  struct {
		Show  profile.ChoiceShowCmd  `cmd:"" help:"Show the values of a choice group."`
		Set   profile.ChoiceSetCmd   `cmd:"" help:"Record a choice."`
		Clear profile.ChoiceClearCmd `cmd:"" help:"Forget a choice."`
		List  profile.ChoiceListCmd  `cmd:"" help:"List your division's choice groups." default:"1"`
	} `cmd:"" help:"Manage elective, minor and tutorial choices."`

	Status    lectures.StatusCmd    `cmd:"" help:"Show the current lecture."`
	Next      lectures.NextCmd      `cmd:"" help:"Show the next lecture."`
	Schedule  lectures.ScheduleCmd  `cmd:"" help:"Show your weekly schedule."`
	Divisions lectures.DivisionsCmd `cmd:"" help:"List divisions and their batches."`
	Rooms     struct {
		Free   lectures.RoomsFreeCmd  `cmd:"" help:"List free rooms." default:"1"`
		Status lectures.RoomStatusCmd `cmd:"" help:"Show whether a room is in use."`
	} `cmd:"" help:"Find rooms."`
	Teacher  lectures.TeacherCmd  `cmd:"" help:"Find where a teacher is."`
	Teachers lectures.TeachersCmd `cmd:"" help:"List teachers."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Debug system.DebugCmd `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	config.LoadEnv()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Timetable companion: current lecture, free rooms and teacher whereabouts"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
			"serve_addr":  constants.DefaultServeAddr,
		},
	)

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Verbose: CLI.Verbose, Dir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{
		Store:     store,
		ConfigDir: configDir,
		Overrides: config.Overrides{
			Timetable: CLI.TimetableSource,
			Teachers:  CLI.TeachersSource,
			Rooms:     CLI.RoomsSource,
			Timezone:  CLI.Timezone,
		},
		Out:         os.Stdout,
		Interactive: term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd()),
	}

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatal(errors.WithHint(err, "Run 'lectern init' to create the store, or 'lectern doctor' to diagnose."))
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// openStore picks the backend from the --config value. LECTERN_DB_CONNECTION
// and the keyring may carry credentials; a connection string given on the
// command line may not.
func openStore(configValue string) (storage.Provider, string, error) {
	fromEnv := config.DBConnection()
	switch {
	case fromEnv != "":
		return openPostgres(fromEnv, true)
	case configValue == keyringConfig:
		connStr, err := keyring.ConnectionString()
		if err != nil {
			return nil, "", errors.WithHint(err, "Store one with 'lectern keyring set <connection-string>'.")
		}
		return openPostgres(connStr, true)
	case isPostgres(configValue):
		return openPostgres(configValue, false)
	}

	path := config.ExpandHome(configValue)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), filepath.Dir(path), nil
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func openPostgres(connStr string, allowCredentials bool) (storage.Provider, string, error) {
	if err := postgres.ValidateConnString(connStr); err != nil {
		if !stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, "", err
		}
		if !allowCredentials {
			return nil, "", errors.WithHint(err,
				"Use 'lectern keyring set', LECTERN_DB_CONNECTION, or a .pgpass file instead.")
		}
	}
	return postgres.New(connStr), config.ExpandHome(filepath.Dir(constants.DefaultConfigPath)), nil
}

// needsStore is false for commands that create the store, diagnose it, or
// never touch it.
func needsStore(command string) bool {
	for _, prefix := range []string{"init", "doctor", "keyring"} {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func isPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") || strings.Contains(s, "host=")
}

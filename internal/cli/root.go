package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/batterylog/internal/config"
	"github.com/cptspacemanspiff/batterylog/internal/storage"
)

var Version = "dev"

// app carries flag values and the per-invocation state shared by commands.
type app struct {
	configPath string
	dbPath     string
	verbose    bool
	logTopics  string

	cfg       *config.Config
	log       *slog.Logger
	sampleLog *slog.Logger
	reportLog *slog.Logger
	listenLog *slog.Logger

	now      func() time.Time
	location *time.Location
}

func NewRootCmd() *cobra.Command {
	a := &app{
		configPath: config.DefaultPath,
		now:        time.Now,
		location:   time.Local,
	}
	var jsonOut bool

	root := &cobra.Command{
		Use:   "batterylog [event]",
		Short: "Log battery state at suspend/resume and report sleep drain",
		Long: `batterylog records battery counters (charge, voltage, current, cycle count)
when called with an event name, typically "suspend" or "resume" from a sleep hook.

Called without an event it reports the most recent sleeps: how long each lasted,
the energy drained and the average drain rate.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] != "" {
				return a.record(cmd, args[0])
			}
			return a.report(cmd, jsonOut)
		},
	}

	root.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", a.configPath, "config file path")
	flags.StringVar(&a.dbPath, "db", "", "database path (overrides storage.db_path)")
	flags.BoolVar(&a.verbose, "verbose", false, "enable all verbose logging (equivalent to --log=all)")
	flags.StringVar(&a.logTopics, "log", "", "comma-separated log topics: sample,report,listen (or 'all')")

	root.AddCommand(
		newHookCmd(a),
		newListenCmd(a),
		newHealthCmd(a),
		newConfigCmd(a),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("batterylog %s\n", Version))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup builds the logger and loads the config before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.log = newLogger(cmd.ErrOrStderr(), parseTopics(a.verbose, a.logTopics))
	a.sampleLog = a.log.With("topic", topicSample)
	a.reportLog = a.log.With("topic", topicReport)
	a.listenLog = a.log.With("topic", topicListen)

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dbPath != "" {
		abs, err := filepath.Abs(a.dbPath)
		if err != nil {
			return fmt.Errorf("resolve --db: %w", err)
		}
		cfg.Storage.DBPath = abs
		if cfg, err = config.NormalizeAndValidate(cfg); err != nil {
			return err
		}
	}
	a.cfg = cfg
	return nil
}

// openStore opens the log database, creating its directory if needed.
func (a *app) openStore() (*storage.DB, error) {
	dbPath := a.cfg.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	a.log.Debug("database opened", "path", dbPath)
	return store, nil
}

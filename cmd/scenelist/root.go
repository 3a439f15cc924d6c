package main

import (
	"io"
	"strconv"

	"scenelist/internal/config"
	"scenelist/internal/editor"
	"scenelist/internal/log"
	"scenelist/internal/source"
	"scenelist/internal/store"
	"scenelist/pkg/types"

	"github.com/spf13/cobra"
)

// skipConfig marks commands that run before a usable config exists.
const skipConfig = "skip-config"

// app holds the flag values and loaded config shared by all subcommands.
type app struct {
	cfgFile  string
	root     string
	backend  string
	logFile  string
	debug    bool
	jsonLogs bool
	strict   bool

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "scenelist",
		Short: "Edit the ordered list of scenes included in a build",
		Long: `Scenelist maintains the ordered list of scenes that go into a build.

Scenes are discovered by scanning the project for files matching the
configured include patterns. Every edit is written to the store right away.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/scenelist/config.yaml)")
	flags.StringVar(&a.root, "root", "", "project root (overrides project.root)")
	flags.StringVar(&a.backend, "store", "", "store backend: yaml or sqlite (overrides store.backend)")
	flags.StringVar(&a.logFile, "log-file", "", "also write logs to this file")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&a.jsonLogs, "json-logs", false, "log as JSON lines")
	flags.BoolVar(&a.strict, "strict", false, "fail on edits at positions that do not exist")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newAvailableCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newMoveCmd(a, "top", "Move a scene to the top of the list", (*editor.Editor).MoveToTop))
	rootCmd.AddCommand(newMoveCmd(a, "up", "Move a scene one position up", (*editor.Editor).MoveUp))
	rootCmd.AddCommand(newMoveCmd(a, "down", "Move a scene one position down", (*editor.Editor).MoveDown))
	rootCmd.AddCommand(newRefreshCmd(a))
	rootCmd.AddCommand(newTUICmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	a.configureLogging(cmd.ErrOrStderr())

	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.root != "" {
		cfg.Project.Root = a.root
	}
	if a.backend != "" {
		cfg.Store.Backend = a.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	setPalette(config.GetTheme(cfg.UI.Theme))

	log.LogWithFields(
		log.F("root", cfg.Project.Root),
		log.F("backend", cfg.Store.Backend),
		log.F("store", cfg.StorePath()),
	).Debug("Configuration loaded")
	return nil
}

func (a *app) configureLogging(out io.Writer) {
	opts := []log.Option{log.WithOutput(out)}
	if a.jsonLogs {
		opts = append(opts, log.WithJSON())
	}
	if a.logFile != "" {
		opts = append(opts, log.WithFile(a.logFile))
	}
	log.Configure(opts...)
	log.SetDebug(a.debug)
}

// session bundles everything one command needs to edit the list.
type session struct {
	scanner *source.Scanner
	store   store.Store
	editor  *editor.Editor
}

// open scans the project, loads the stored list and starts an editor.
func (a *app) open() (*session, error) {
	scanner, err := source.NewScanner(a.cfg.Project.Root, a.cfg.Scan.Include, a.cfg.Scan.Exclude)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(a.cfg)
	if err != nil {
		return nil, err
	}
	initial, err := st.Load()
	if err != nil {
		st.Close()
		return nil, err
	}

	opts := []editor.Option{editor.WithLogger(log.Default())}
	if a.strict {
		opts = append(opts, editor.WithStrictIndices())
	}
	ed, err := editor.New(scanner, st, initial, opts...)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &session{scanner: scanner, store: st, editor: ed}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// target turns a command-line argument into an item of items. Numbers are
// positions; anything else is resolved as a path or scene name. Positions
// outside items are passed through so the editor decides what to do.
func target(arg string, items []types.Item) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return n, nil
	}
	return editor.Resolve(items, arg)
}

// resolvedArg is one command-line argument mapped onto a list or pool.
type resolvedArg struct {
	arg   string
	item  types.Item // empty when index is out of range
	index int
}

// targets resolves every argument up front, so a bad argument fails the
// command before anything is changed. An argument naming an item already
// named by an earlier one is dropped.
func targets(args []string, items []types.Item) ([]resolvedArg, error) {
	resolved := make([]resolvedArg, 0, len(args))
	seen := make(map[types.Item]bool, len(args))
	for _, arg := range args {
		n, err := target(arg, items)
		if err != nil {
			return nil, err
		}
		r := resolvedArg{arg: arg, index: n}
		if n >= 0 && n < len(items) {
			r.item = items[n]
			if seen[r.item] {
				continue
			}
			seen[r.item] = true
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}

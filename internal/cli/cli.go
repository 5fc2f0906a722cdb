// Package cli implements the kintree command-line interface.
//
// Every command works on the tree held by the configured storage backend:
// it loads the tree (falling back to the built-in seed), applies one change
// or renders one view, and saves if anything changed. The interactive
// "view" command keeps the tree open in a terminal diagram with pan, zoom,
// selection and editing.
//
// # Commands
//
//   - list, timeline, roots, tree: inspect the tree
//   - add, add-child, add-father, add-mother, edit, delete, reset: change it
//   - render: write SVG, DOT, PDF or PNG diagrams
//   - view: interactive terminal diagram
//   - import, export: JSON and YAML files
//   - config: show or initialise the configuration file
//   - cache: inspect or clear the PDF/PNG conversion cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and storage and layout timings are logged
// through the observability hooks at debug level.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/buildinfo"
	"github.com/matzehuels/kintree/pkg/config"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "kintree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means config.Path().
	configPath string
	cfg        *config.Config

	// Replaced in tests.
	openBackend func(ctx context.Context, cfg storage.Config) (storage.Backend, error)
	interactive func() bool
	prompt      func(question string) (bool, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		openBackend: storage.Open,
		interactive: isTerminal,
		prompt:      runConfirm,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "kintree edits and draws family trees",
		Long:         `kintree keeps a family tree of members with parents and spouses, lays it out as a generational diagram with curved connectors, and lets you browse it in the terminal or render it to SVG, PDF or PNG.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installLogHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kintree/config.toml)")

	root.AddGroup(
		&cobra.Group{ID: groupInspect, Title: "Inspect:"},
		&cobra.Group{ID: groupEdit, Title: "Edit:"},
		&cobra.Group{ID: groupOutput, Title: "Output:"},
	)

	for _, cmd := range []*cobra.Command{
		c.listCommand(), c.timelineCommand(), c.rootsCommand(), c.treeCommand(), c.viewCommand(),
	} {
		cmd.GroupID = groupInspect
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.withMemberCompletion(c.addCommand(), false),
		c.withMemberCompletion(c.addChildCommand(), true),
		c.withMemberCompletion(c.addParentCommand(family.Male), true),
		c.withMemberCompletion(c.addParentCommand(family.Female), true),
		c.withMemberCompletion(c.editCommand(), true),
		c.withMemberCompletion(c.deleteCommand(), true),
		c.resetCommand(),
		c.importCommand(),
	} {
		cmd.GroupID = groupEdit
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{c.renderCommand(), c.exportCommand()} {
		cmd.GroupID = groupOutput
		root.AddCommand(cmd)
	}
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

const (
	groupInspect = "inspect"
	groupEdit    = "edit"
	groupOutput  = "output"
)

// =============================================================================
// Config and Storage
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// session is an open tree plus the store it came from.
type session struct {
	cfg   config.Config
	store *storage.TreeStore
	tree  *family.Tree
	close func() error
}

// save writes the session tree back to its store.
func (s *session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.tree.Data())
}

// openSession loads the config, opens the backend and loads the tree.
// Callers must call close.
func (c *CLI) openSession(ctx context.Context) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := loggerFromContext(ctx)
	backend, err := c.openBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened storage", "backend", backend.Name(), "key", cfg.Storage.Key)

	store := storage.NewTreeStore(backend, cfg.Storage.Key, logger)
	return &session{
		cfg:   cfg,
		store: store,
		tree:  family.NewTree(store.Load(ctx)),
		close: backend.Close,
	}, nil
}

// isTerminal reports whether stdin is an interactive terminal.
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

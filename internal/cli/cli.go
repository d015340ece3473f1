package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ledgerline/expensectl/internal/config"
	"github.com/ledgerline/expensectl/pkg/buildinfo"
	"github.com/ledgerline/expensectl/pkg/expenses"
	"github.com/ledgerline/expensectl/pkg/httputil"
	"github.com/ledgerline/expensectl/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "expensectl"

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

	// Doer replaces the HTTP transport when set. Tests use it to point
	// commands at a fake.
	Doer httputil.Doer

	interactive bool
	stderr      io.Writer

	// Persistent flags.
	verbose    bool
	configPath string
	baseURL    string
	output     string

	cfg    *config.Config
	client *expenses.Client
}

// New creates a new CLI instance logging to w.
// The spinner only runs when w is a terminal.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		interactive: isTerminal(w),
		stderr:      w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "expensectl talks to the expense tracker API",
		Long: `expensectl is a command-line client for the expense tracker REST API.
It lists, creates, edits and soft-deletes expenses, shows analytics and
produces exports.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/expensectl/config.toml)")
	flags.StringVar(&c.baseURL, "base-url", "", "API base URL (overrides config and environment)")
	flags.StringVarP(&c.output, "output", "o", "", "output format: table or json")

	root.AddCommand(c.listCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.restoreCommand())
	root.AddCommand(c.purgeCommand())
	root.AddCommand(c.deletedCommand())
	root.AddCommand(c.analyticsCommand())
	root.AddCommand(c.categoriesCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.healthCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.SetHTTPHooks(newLogHooks(c.Logger))
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Config & Client
// =============================================================================

// loadConfig resolves the configuration once per invocation.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(config.Options{Path: c.configPath, BaseURL: c.baseURL})
	if err != nil {
		return nil, err
	}
	if c.output != "" {
		cfg.Output = c.output
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	c.Logger.Debug("config loaded", "base_url", cfg.BaseURL, "timeout", cfg.Timeout, "file", cfg.File)
	c.cfg = cfg
	return cfg, nil
}

// api returns the expense client for the resolved base URL.
func (c *CLI) api() (*expenses.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	doer := c.Doer
	if doer == nil {
		doer = httputil.NewHTTPClient(cfg.Timeout)
	}
	c.client = expenses.NewClient(cfg.BaseURL, doer)
	return c.client, nil
}

// jsonOutput reports whether results should be printed as JSON.
func (c *CLI) jsonOutput() bool {
	return c.cfg != nil && c.cfg.Output == config.OutputJSON
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

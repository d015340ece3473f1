package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/expensectl/internal/config"
)

// healthCommand creates the health command.
func (c *CLI) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.api()
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			doc, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			prog.done("Health check")

			w := cmd.OutOrStdout()
			if c.jsonOutput() {
				return writeDocument(w, doc)
			}
			printSuccess(w, "API is up at %s", StyleLink.Render(client.BaseURL()))

			var status struct {
				Status    string `json:"status"`
				Timestamp string `json:"timestamp"`
			}
			if doc.Decode(&status) == nil && status.Status != "" {
				printDetail(w, "status %s %s", status.Status, status.Timestamp)
			}
			return nil
		},
	}
}

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect expensectl settings",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput() {
				return printJSON(w, map[string]string{
					"base_url": cfg.BaseURL,
					"timeout":  cfg.Timeout.String(),
					"output":   cfg.Output,
					"file":     cfg.File,
				})
			}
			timeout := "none"
			if cfg.Timeout > 0 {
				timeout = cfg.Timeout.String()
			}
			file := cfg.File
			if file == "" {
				file = StyleDim.Render("(none)")
			}
			printKeyValue(w, "base_url", cfg.BaseURL)
			printKeyValue(w, "timeout", timeout)
			printKeyValue(w, "output", cfg.Output)
			printKeyValue(w, "file", file)
			return nil
		},
	}
}

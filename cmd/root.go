package cmd

import (
	"fmt"
	"os"

	"github.com/govassist/widget-agent/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	endpoint    string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "widget-agent",
	Short: "In-page assistant widget agent for the services portal",
	Long: `The client agent behind the services assistant widget.

It persists the widget's conversation state across page loads, infers the
signed-in user's display name from a host page's rendered content, and
routes chat messages to the local assistant backend.

Quick Start:
  widget-agent run https://portal.example.gov   # attach to a page and chat
  widget-agent detect page.html                 # run identity detection only
  widget-agent show                             # inspect persisted state
  widget-agent reset                            # clear conversation and identity

State is scoped to the install, not to any single page, so the widget
follows you across host sites.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom state location (directory for the agent database)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Assistant backend chat endpoint (overrides config)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves paths and config, honoring the persistent flags
func loadConfig() (internal.StatePaths, internal.Config, error) {
	paths, err := internal.GetStatePaths(storagePath)
	if err != nil {
		return internal.StatePaths{}, internal.Config{}, fmt.Errorf("failed to resolve state paths: %w", err)
	}

	cfg, err := internal.LoadConfig(paths.ConfigPath())
	if err != nil {
		internal.LogWarn("using default config: %v", err)
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	return paths, cfg, nil
}

// loadPage loads a host page from a URL or a local HTML file
func loadPage(cmd *cobra.Command, target string) (*internal.Page, error) {
	if _, err := os.Stat(target); err == nil {
		html, err := os.ReadFile(target)
		if err != nil {
			return nil, fmt.Errorf("failed to read page file: %w", err)
		}
		return internal.NewPage(target, string(html))
	}
	return internal.FetchPage(cmd.Context(), target)
}

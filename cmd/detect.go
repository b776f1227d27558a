package cmd

import (
	"fmt"
	"time"

	"github.com/govassist/widget-agent/internal"
	"github.com/spf13/cobra"
)

var detectTimeout time.Duration

var detectCmd = &cobra.Command{
	Use:   "detect <url-or-file>",
	Short: "Run identity detection against a page",
	Long: `Run the identity detection passes against a host page and report
the result without touching persisted state.

The selector pass checks known structural locations for a signed-in name,
the heuristic pass reads around logout affordances, and if neither
resolves the bounded timeout settles on the fallback identity. The
fallback is normal behavior for anonymous pages, not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}

		page, err := loadPage(cmd, args[0])
		if err != nil {
			return err
		}

		detector := internal.NewIdentityDetector(page, cfg.ExtraSelectors...)
		name := detector.Resolve(cmd.Context(), detectTimeout, cfg.FallbackIdentity)

		fmt.Printf("%s %s\n", infoStyle.Render("identity:"), identityStyle.Render(name))
		fmt.Printf("%s %s\n", infoStyle.Render("state:"), string(detector.State()))
		return nil
	},
}

func init() {
	detectCmd.Flags().DurationVar(&detectTimeout, "timeout", internal.DefaultDetectTimeout, "Bound on the observation phase")
	rootCmd.AddCommand(detectCmd)
}

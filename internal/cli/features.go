package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/feature"
)

func newFeaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List feature tags and their resolved state",
		Long: `List every recognized feature tag and whether the resolved
configuration enables it. Disabled features parse as plain text.`,
		RunE: runFeatures,
	}

	return cmd
}

func runFeatures(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("get color flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(workDir, configPath)
	if err != nil {
		return err
	}
	feats, err := cfg.FeatureSet()
	if err != nil {
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(color, os.Stdout))

	for _, f := range feature.All() {
		if feats.Enabled(f) {
			fmt.Fprintf(os.Stdout, "  %s %s\n",
				styles.FeatureOn.Render("on "), string(f))
		} else {
			fmt.Fprintf(os.Stdout, "  %s %s\n",
				styles.Dim.Render("off"), styles.FeatureOff.Render(string(f)))
		}
	}

	return nil
}

package listflags

import "github.com/spf13/cobra"

// AddJSONFlag adds a shared --json flag to reporting commands.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output JSON")
}

// AddFeatureFlag adds a shared --feature flag naming a feature under prds/.
func AddFeatureFlag(cmd *cobra.Command, target *string) {
	if target == nil {
		cmd.Flags().String("feature", "", "Feature name under prds/")
		return
	}

	cmd.Flags().StringVar(target, "feature", "", "Feature name under prds/")
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"potlint/internal/domain"
	m "potlint/internal/model"
)

var blueprintsOutputFlag string

// blueprintsCmd represents the blueprints command.
var blueprintsCmd = newBlueprintsCmd()

func newBlueprintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprints [paths...]",
		Short: "Batch-compile Blueprint sources to GtkBuilder files",
		Long: `Compile every .blp file under the given subtrees with blueprint-compiler.
If blueprint-compiler is not installed, potlint offers to install it
(--force-install skips the prompt); a refusal exits with code 2.

` + pathsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.CompileBlueprints(cmd.Context(), domain.BlueprintArgs{
				Manifest:     m.Path(viper.GetString(manifestFlagName)),
				Paths:        scanPaths(args),
				Exclude:      viper.GetStringSlice(excludeConfigKey),
				OutputDir:    m.Path(viper.GetString(blueprintsOutKey)),
				ForceInstall: forceInstallFlag,
			})
		},
	}

	configureBlueprintsFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(blueprintsCmd)
}

func configureBlueprintsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&blueprintsOutputFlag, "output-dir", "o", defaultBlueprintsOut, "directory for the compiled .ui files, relative to the project root")
	bindFlagToConfig(cmd.Flags().Lookup("output-dir"), blueprintsOutKey)
}

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"potlint/internal/domain"
	m "potlint/internal/model"
)

var checkManifestFlag string
var checkSkipFileFlag string
var checkReportFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate the translation manifest",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := workflow.Check(cmd.Context(), domain.CheckArgs{
				Manifest:  m.Path(viper.GetString(manifestFlagName)),
				Skip:      m.Path(viper.GetString(skipFileConfigKey)),
				Paths:     scanPaths(args),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
				GitStaged: gitStagedFlag,
				Report:    m.Path(checkReportFlag),
			})

			// The report already named every discrepancy; keep cobra from
			// echoing the sentinel on top of it.
			if errors.Is(err, domain.ErrCheckFailed) {
				cmd.SilenceErrors = true
			}

			return err
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&checkManifestFlag, manifestFlagName, "m", defaultManifest, "manifest file, relative to the project root")
	bindFlagToConfig(cmd.Flags().Lookup(manifestFlagName), manifestFlagName)

	cmd.Flags().StringVar(&checkSkipFileFlag, skipFileFlagName, defaultSkipFile, "skip list, relative to the project root")
	bindFlagToConfig(cmd.Flags().Lookup(skipFileFlagName), skipFileConfigKey)

	cmd.Flags().StringVarP(&checkReportFlag, "report", "r", "", "write a YAML copy of the check report to this path")
}

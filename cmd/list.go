package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"potlint/internal/domain"
	m "potlint/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List files containing translatable strings",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Discover(cmd.Context(), domain.DiscoverArgs{
				Manifest: m.Path(viper.GetString(manifestFlagName)),
				Paths:    scanPaths(args),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}

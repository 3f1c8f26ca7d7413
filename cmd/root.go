// Package cmd provides the root command and CLI setup for potlint.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"potlint/internal/adapter"
	"potlint/internal/controller"
	"potlint/internal/domain"
	"potlint/internal/i18n"
	m "potlint/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var toolRunner adapter.ToolRunnerAdapter
var reportStore adapter.ReportStore
var translator *i18n.Translator
var workflow domain.Workflow
var ui controller.UI

// gitStagedFlag restricts the content scan to git-staged files.
var gitStagedFlag bool

// forceInstallFlag installs missing external tools without prompting.
var forceInstallFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

// excludePatterns filters scanned files for applicable commands.
var excludePatterns []string

// Exit codes: a failed check and an unavailable external dependency are
// distinguishable to callers such as pre-commit hooks.
const (
	exitCheckFailed     = 1
	exitToolUnavailable = 2
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	translator = i18n.NewTranslator(viper.GetString(localeFlagName))
	ui = controller.NewUI(rootCmd, translator, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	toolRunner = adapter.NewLocalToolRunnerAdapter(controller.IsTTY(os.Stdin))
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(fsAdapter, toolRunner, reportStore, ui)
}

const pathsHelp = `Paths are project-root-relative subtrees to scan:
  - potlint check              scan the whole tree
  - potlint check src data     scan only src and data`

const rootLongDescription = `Potlint keeps gettext translation manifests honest. It cross-references
the files declared translatable (POTFILES.in, plus a POTFILES.skip list)
against the files actually found to contain translatable-string markers,
and reports stale entries, undeclared files, disallowed gettext macros and
ordering violations.

` + pathsHelp

const checkLongDescription = `Validate the translation manifest against a content scan of the tree.

` + pathsHelp

const listLongDescription = `List the files found to contain translatable-string markers.

` + pathsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "potlint",
		Short: "Translation manifest conformity checker",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&gitStagedFlag, gitStagedFlagName, "s", false, "restrict the content scan to git-staged files")

	cmd.PersistentFlags().BoolVarP(&forceInstallFlag, forceInstallFlagName, "f", false, "install missing external tools without prompting")

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if errors.Is(err, adapter.ErrToolUnavailable) {
		os.Exit(exitToolUnavailable)
	}

	os.Exit(exitCheckFailed)
}

// scanPaths resolves the scan roots: CLI args win, then the configured
// paths.scan list, then the whole tree.
func scanPaths(args []string) []m.Path {
	if len(args) == 0 {
		args = viper.GetStringSlice(scanConfigKey)
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

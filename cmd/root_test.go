package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	m "potlint/internal/model"
)

// newTestRootCmd builds a fresh command tree so tests do not share parse
// state with the package-level rootCmd.
func newTestRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}

func TestRootCmd_Help(t *testing.T) {
	cmd := newTestRootCmd()
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "translation manifests")
}

func TestScanPaths(t *testing.T) {
	t.Run("cli args win", func(t *testing.T) {
		require.Equal(t, []m.Path{"src", "data"}, scanPaths([]string{"src", "data"}))
	})

	t.Run("falls back to configured scan roots", func(t *testing.T) {
		viper.Set(scanConfigKey, []string{"src"})
		defer viper.Set(scanConfigKey, []string{})

		require.Equal(t, []m.Path{"src"}, scanPaths(nil))
	})

	t.Run("empty everywhere means whole tree", func(t *testing.T) {
		require.Empty(t, scanPaths(nil))
	})
}

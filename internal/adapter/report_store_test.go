package adapter

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	m "potlint/internal/model"
)

func TestYAMLReportStore(t *testing.T) {
	store := NewReportStore()

	report := m.CheckReport{
		Manifest:   "po/POTFILES.in",
		Skip:       "po/POTFILES.skip",
		Declared:   3,
		Discovered: 4,
		Discrepancies: []m.Discrepancy{
			{Class: m.UndeclaredFile, Category: m.CategoryBlueprint, Path: "src/d.blp"},
			{Class: m.OrderingViolation, Path: "src/b.rs", Expected: "src/a.rs"},
		},
	}

	t.Run("round trips through YAML", func(t *testing.T) {
		path := m.Path(filepath.Join(t.TempDir(), "reports", "check.yaml"))

		require.NoError(t, store.SaveReport(path, report))

		loaded, err := store.LoadReport(path)
		require.NoError(t, err)

		if diff := cmp.Diff(report, loaded); diff != "" {
			t.Fatalf("report changed across save/load (-want +got):\n%s", diff)
		}
	})

	t.Run("loading a missing report fails", func(t *testing.T) {
		_, err := store.LoadReport(m.Path(filepath.Join(t.TempDir(), "nope.yaml")))
		require.Error(t, err)
	})

	t.Run("loading junk fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.yaml")
		require.NoError(t, NewLocalSourceFSAdapter().WriteFile(m.Path(path), []byte("\t not yaml"), 0o600))

		_, err := store.LoadReport(m.Path(path))
		require.Error(t, err)
	})
}

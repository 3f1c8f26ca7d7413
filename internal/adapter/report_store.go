package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "potlint/internal/model"
)

// ReportStore persists check reports so CI jobs can archive them or diff
// them between runs.
type ReportStore interface {
	SaveReport(path m.Path, report m.CheckReport) error
	LoadReport(path m.Path) (m.CheckReport, error)
}

// YAMLReportStore stores reports as YAML documents on disk.
type YAMLReportStore struct{}

// NewReportStore constructs the default YAML-backed store.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes the report to path, creating parent directories as needed.
func (s *YAMLReportStore) SaveReport(path m.Path, report m.CheckReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// LoadReport reads a previously saved report from path.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.CheckReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.CheckReport{}, fmt.Errorf("reading report: %w", err)
	}

	var report m.CheckReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.CheckReport{}, fmt.Errorf("decoding report: %w", err)
	}

	return report, nil
}

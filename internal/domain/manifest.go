// Package domain implements the translation-manifest conformity check: the
// manifest parser, the marker scanner, the cross-reference validator and the
// workflow that orchestrates them.
package domain

import (
	"fmt"
	"os"
	"strings"

	"potlint/internal/adapter"
	m "potlint/internal/model"
)

// ParseManifest parses POTFILES-style content: one path per line, blank
// lines and lines starting with # ignored. Order and duplicates are
// preserved; the ordering check depends on both.
func ParseManifest(source m.Path, data []byte) m.Manifest {
	manifest := m.Manifest{Source: source}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		manifest.Entries = append(manifest.Entries, m.Path(line))
	}

	return manifest
}

// LoadManifest reads and parses the manifest at root/source. When required
// is false a missing file yields an empty manifest, which is how an absent
// skip list is treated.
func LoadManifest(fs adapter.SourceFSAdapter, root, source m.Path, required bool) (m.Manifest, error) {
	full := fs.JoinPath(string(root), string(source))

	data, err := fs.ReadFile(full)
	if err != nil {
		if !required && os.IsNotExist(err) {
			return m.Manifest{Source: source}, nil
		}

		return m.Manifest{}, fmt.Errorf("reading manifest %s: %w", source, err)
	}

	return ParseManifest(source, data), nil
}

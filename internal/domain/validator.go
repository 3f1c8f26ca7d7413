package domain

import (
	"slices"
	"strings"

	"potlint/internal/adapter"
	m "potlint/internal/model"
	"potlint/pkg"
)

// ValidateInput carries everything the cross-reference needs: the parsed
// manifest and skip list plus the scan result for the same tree.
type ValidateInput struct {
	Manifest m.Manifest
	Skip     m.Manifest
	Scan     ScanResult

	// SkipStale disables stale-entry reporting. Staged mode sets it
	// because a partial scan cannot tell a stale entry from an unscanned
	// one.
	SkipStale bool
}

// Validator cross-references declared and discovered translatable files.
// It is a pure computation over its inputs apart from the existence probes,
// which go through the filesystem adapter.
type Validator struct {
	fs   adapter.SourceFSAdapter
	root m.Path
}

// NewValidator builds a Validator anchored at the project root.
func NewValidator(fs adapter.SourceFSAdapter, root m.Path) *Validator {
	return &Validator{fs: fs, root: root}
}

// Validate runs the full check and returns its report:
//
//  1. every declared path (manifest and skip) must exist; misses are fatal
//     to the ordering and cross-reference steps of this manifest,
//  2. per category, declared (manifest ∪ skip) and discovered cancel
//     one-for-one; declared leftovers are stale, discovered leftovers are
//     undeclared,
//  3. macro-form gettext usage is always reported, even after a fatal miss,
//  4. the manifest's categorized entries must already be in ascending
//     byte-wise order; only the first violation is reported.
func (v *Validator) Validate(in ValidateInput) m.CheckReport {
	report := m.CheckReport{
		Manifest:   in.Manifest.Source,
		Skip:       in.Skip.Source,
		Declared:   len(in.Manifest.Categorized()) + len(in.Skip.Categorized()),
		Discovered: in.Scan.FoundTotal(),
	}

	missing := v.missingEntries(in.Manifest.Entries, in.Skip.Entries)
	report.Discrepancies = append(report.Discrepancies, missing...)

	// A declared-but-missing file invalidates the cross-reference and the
	// ordering check for this manifest; macro usage is scan-derived and is
	// still reported.
	if len(missing) == 0 {
		report.Discrepancies = append(report.Discrepancies, v.crossReference(in)...)
	}

	for _, path := range in.Scan.Macros {
		report.Discrepancies = append(report.Discrepancies, m.Discrepancy{
			Class:    m.MacroUsage,
			Category: m.CategorySource,
			Path:     path,
		})
	}

	if len(missing) == 0 {
		if d, ok := orderingViolation(in.Manifest.Categorized()); ok {
			report.Discrepancies = append(report.Discrepancies, d)
		}
	}

	return report
}

// missingEntries probes every declared path, manifest first, then the skip
// list. All misses are reported, not just the first.
func (v *Validator) missingEntries(manifest, skip []m.Path) []m.Discrepancy {
	var out []m.Discrepancy

	for _, entry := range append(slices.Clone(manifest), skip...) {
		full := v.fs.JoinPath(string(v.root), string(entry))
		if _, err := v.fs.FileInfo(full); err == nil {
			continue
		}

		category, _ := m.CategoryOf(entry)
		out = append(out, m.Discrepancy{
			Class:    m.MissingFile,
			Category: category,
			Path:     entry,
		})
	}

	return out
}

// crossReference cancels declared against discovered per category and
// reports the leftovers, stale entries first, grouped by category.
func (v *Validator) crossReference(in ValidateInput) []m.Discrepancy {
	declared := make(map[m.Category]pkg.Multiset[m.Path], len(m.Categories))
	for _, category := range m.Categories {
		declared[category] = pkg.NewMultiset[m.Path]()
	}

	for _, entry := range append(slices.Clone(in.Manifest.Entries), in.Skip.Entries...) {
		if category, ok := m.CategoryOf(entry); ok {
			declared[category].Add(entry)
		}
	}

	var stale, undeclared []m.Discrepancy

	for _, category := range m.Categories {
		found := pkg.NewMultiset(in.Scan.Found[category]...)
		declared[category].Cancel(found)

		for _, path := range sortedItems(declared[category]) {
			stale = append(stale, m.Discrepancy{
				Class:    m.StaleEntry,
				Category: category,
				Path:     path,
			})
		}

		for _, path := range sortedItems(found) {
			undeclared = append(undeclared, m.Discrepancy{
				Class:    m.UndeclaredFile,
				Category: category,
				Path:     path,
			})
		}
	}

	if in.SkipStale {
		stale = nil
	}

	return append(stale, undeclared...)
}

// orderingViolation compares the entries position-by-position against their
// stable byte-wise sort and reports the first mismatch: the entry that
// appears before the one that belongs at its position.
func orderingViolation(entries []m.Path) (m.Discrepancy, bool) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b m.Path) int {
		return strings.Compare(string(a), string(b))
	})

	for i := range entries {
		if entries[i] != sorted[i] {
			return m.Discrepancy{
				Class:    m.OrderingViolation,
				Path:     entries[i],
				Expected: sorted[i],
			}, true
		}
	}

	return m.Discrepancy{}, false
}

func sortedItems(set pkg.Multiset[m.Path]) []m.Path {
	items := set.Items()
	sortPaths(items)

	return items
}

package domain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"potlint/internal/adapter"
	m "potlint/internal/model"
)

// Marker patterns, one per category. The source patterns distinguish the
// accepted method-style calls from the disallowed macro form: gettext( and
// gettext_f( are markers, gettext!( and gettext_f!( are violations.
var (
	uiMarker        = []byte(`translatable="yes"`)
	blueprintMarker = regexp.MustCompile(`(^|[^A-Za-z0-9_])_\(`)
	sourceMarker    = regexp.MustCompile(`\bgettext(_f)?\(`)
	macroMarker     = regexp.MustCompile(`\bgettext(_f)?!\(`)
)

// Directories never worth descending into.
var skippedDirs = map[string]struct{}{
	".git":             {},
	".flatpak-builder": {},
	"builddir":         {},
	"_build":           {},
	"target":           {},
	"subprojects":      {},
}

// ScanResult is what the content scan found: per-category files carrying a
// marker, plus the source files matching the disallowed macro pattern.
type ScanResult struct {
	Found  map[m.Category][]m.Path
	Macros []m.Path

	// FilesScanned counts every candidate whose content was inspected.
	FilesScanned int
}

// FoundTotal returns the number of discovered marker-carrying files across
// all categories.
func (r ScanResult) FoundTotal() int {
	total := 0
	for _, paths := range r.Found {
		total += len(paths)
	}

	return total
}

// Scanner walks a project tree and inspects candidate files for
// translatable-string markers.
type Scanner struct {
	fs      adapter.SourceFSAdapter
	exclude []*regexp.Regexp
}

// NewScanner builds a Scanner. Exclude patterns are regular expressions
// matched against root-relative slash-separated paths.
func NewScanner(fs adapter.SourceFSAdapter, exclude []string) (*Scanner, error) {
	s := &Scanner{fs: fs}

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		s.exclude = append(s.exclude, re)
	}

	return s, nil
}

// Scan walks the given subtrees (relative to root) and returns every
// categorized file carrying a marker. Results are sorted byte-wise so the
// concurrent content scan stays deterministic from the caller's view.
func (s *Scanner) Scan(ctx context.Context, root m.Path, subtrees []m.Path) (ScanResult, error) {
	candidates, err := s.collect(root, subtrees, nil)
	if err != nil {
		return ScanResult{}, err
	}

	return s.scanContents(ctx, root, candidates)
}

// ScanFiles inspects an explicit list of root-relative paths instead of
// walking the tree. Used by staged mode, where the candidate set comes from
// the git index. Paths that no longer exist (e.g. staged deletions that
// slipped through) are skipped.
func (s *Scanner) ScanFiles(ctx context.Context, root m.Path, files []m.Path) (ScanResult, error) {
	var candidates []m.Path

	for _, file := range files {
		if _, ok := m.CategoryOf(file); !ok {
			continue
		}

		if s.excluded(file) {
			continue
		}

		if _, err := s.fs.FileInfo(s.fs.JoinPath(string(root), string(file))); err != nil {
			continue
		}

		candidates = append(candidates, file)
	}

	return s.scanContents(ctx, root, candidates)
}

// Blueprints returns every .blp file under the given subtrees, sorted.
func (s *Scanner) Blueprints(root m.Path, subtrees []m.Path) ([]m.Path, error) {
	candidates, err := s.collect(root, subtrees, func(path m.Path) bool {
		category, ok := m.CategoryOf(path)
		return ok && category == m.CategoryBlueprint
	})
	if err != nil {
		return nil, err
	}

	sortPaths(candidates)

	return candidates, nil
}

// collect walks the subtrees and gathers root-relative candidate paths.
// When keep is nil any categorized file qualifies.
func (s *Scanner) collect(root m.Path, subtrees []m.Path, keep func(m.Path) bool) ([]m.Path, error) {
	if len(subtrees) == 0 {
		subtrees = []m.Path{"."}
	}

	var candidates []m.Path

	for _, subtree := range subtrees {
		start := s.fs.JoinPath(string(root), string(subtree))

		err := s.fs.Walk(start, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if _, skip := skippedDirs[info.Name()]; skip {
					return filepath.SkipDir
				}

				if strings.HasPrefix(info.Name(), ".") && path != string(start) {
					return filepath.SkipDir
				}

				return nil
			}

			rel, err := s.fs.RelPath(root, m.Path(path))
			if err != nil {
				return err
			}

			if _, ok := m.CategoryOf(rel); !ok {
				return nil
			}

			if keep != nil && !keep(rel) {
				return nil
			}

			if s.excluded(rel) {
				return nil
			}

			candidates = append(candidates, rel)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", subtree, err)
		}
	}

	return candidates, nil
}

// scanContents inspects candidate contents for markers, fanning out over a
// bounded worker group. The per-category slices are sorted afterwards so
// output never depends on completion order.
func (s *Scanner) scanContents(ctx context.Context, root m.Path, candidates []m.Path) (ScanResult, error) {
	result := ScanResult{
		Found:        make(map[m.Category][]m.Path, len(m.Categories)),
		FilesScanned: len(candidates),
	}

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for _, candidate := range candidates {
		candidate := candidate
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			content, err := s.fs.ReadFile(s.fs.JoinPath(string(root), string(candidate)))
			if err != nil {
				return fmt.Errorf("reading %s: %w", candidate, err)
			}

			category, _ := m.CategoryOf(candidate)
			marked, macro := inspect(category, content)

			mu.Lock()
			defer mu.Unlock()

			if marked {
				result.Found[category] = append(result.Found[category], candidate)
			}

			if macro {
				result.Macros = append(result.Macros, candidate)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return ScanResult{}, err
	}

	for _, paths := range result.Found {
		sortPaths(paths)
	}

	sortPaths(result.Macros)

	return result, nil
}

// inspect reports whether content carries the category's marker and, for
// source files, whether it uses the disallowed macro form.
func inspect(category m.Category, content []byte) (marked, macro bool) {
	switch category {
	case m.CategoryUI:
		return bytes.Contains(content, uiMarker), false
	case m.CategoryBlueprint:
		return blueprintMarker.Match(content), false
	case m.CategorySource:
		return sourceMarker.Match(content), macroMarker.Match(content)
	}

	return false, false
}

func (s *Scanner) excluded(path m.Path) bool {
	for _, re := range s.exclude {
		if re.MatchString(string(path)) {
			return true
		}
	}

	return false
}

func sortPaths(paths []m.Path) {
	sort.Slice(paths, func(i, j int) bool {
		return paths[i] < paths[j]
	})
}

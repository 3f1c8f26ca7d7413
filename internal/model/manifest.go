// Package model holds the value types shared by the potlint domain,
// adapters and controllers.
package model

import "strings"

// Path represents a file system path, relative to the project root and
// slash-separated, matching the form entries take in POTFILES manifests.
type Path string

// Category buckets a translatable file by its extension. Files outside
// these three buckets never participate in the cross-reference.
type Category string

const (
	// CategoryUI represents GtkBuilder interface definitions (.ui) whose
	// marker is the translatable="yes" attribute.
	CategoryUI Category = "ui"

	// CategoryBlueprint represents Blueprint markup (.blp) whose marker is
	// a _( call site.
	CategoryBlueprint Category = "blueprint"

	// CategorySource represents compiled-language sources (.rs) whose
	// marker is a gettext or gettext_f method call.
	CategorySource Category = "source"
)

// Categories lists the buckets in their reporting order.
var Categories = []Category{CategoryUI, CategoryBlueprint, CategorySource}

// CategoryOf derives the bucket for a path from its extension. The second
// return value is false for paths that belong to no bucket (desktop files,
// metainfo and so on), which are dropped from categorization.
func CategoryOf(path Path) (Category, bool) {
	switch {
	case strings.HasSuffix(string(path), ".ui"):
		return CategoryUI, true
	case strings.HasSuffix(string(path), ".blp"):
		return CategoryBlueprint, true
	case strings.HasSuffix(string(path), ".rs"):
		return CategorySource, true
	}

	return "", false
}

// Manifest is the parsed content of a POTFILES-style file: the declared
// paths in file order, duplicates preserved.
type Manifest struct {
	// Source is the path of the manifest file itself.
	Source Path

	// Entries are the declared paths in the order they appear in the file.
	Entries []Path
}

// Categorized returns the entries that belong to a bucket, in file order.
// Uncategorized entries do not take part in the ordering check either.
func (m Manifest) Categorized() []Path {
	out := make([]Path, 0, len(m.Entries))

	for _, entry := range m.Entries {
		if _, ok := CategoryOf(entry); ok {
			out = append(out, entry)
		}
	}

	return out
}

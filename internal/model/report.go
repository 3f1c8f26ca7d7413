package model

// DiscrepancyClass names one of the manifest/content mismatch categories.
type DiscrepancyClass string

const (
	// MissingFile indicates a manifest or skip entry naming a path that
	// does not exist on disk. Fatal: the ordering and cross-reference
	// steps are skipped for that manifest.
	MissingFile DiscrepancyClass = "missing"

	// StaleEntry indicates a declared path in which no marker was found.
	StaleEntry DiscrepancyClass = "stale"

	// UndeclaredFile indicates a discovered marker in a path that neither
	// the manifest nor the skip list declares.
	UndeclaredFile DiscrepancyClass = "undeclared"

	// MacroUsage indicates a source file using the macro-form gettext
	// invocation, which is disallowed regardless of declaration.
	MacroUsage DiscrepancyClass = "macro"

	// OrderingViolation indicates the first manifest entry found out of
	// ascending byte-wise order.
	OrderingViolation DiscrepancyClass = "ordering"
)

// Discrepancy is a single reported mismatch.
type Discrepancy struct {
	Class    DiscrepancyClass `yaml:"class"`
	Category Category         `yaml:"category,omitempty"`
	Path     Path             `yaml:"path"`

	// Expected is only set for ordering violations: the entry that should
	// have occupied the position where Path appears.
	Expected Path `yaml:"expected,omitempty"`
}

// CheckReport is the structured result of validating one manifest/skip
// pair against a content scan. It is computed fresh on every run; nothing
// is persisted between runs unless the caller saves it explicitly.
type CheckReport struct {
	Manifest      Path          `yaml:"manifest"`
	Skip          Path          `yaml:"skip,omitempty"`
	Declared      int           `yaml:"declared"`
	Discovered    int           `yaml:"discovered"`
	Discrepancies []Discrepancy `yaml:"discrepancies,omitempty"`
}

// Passed reports whether the check found no discrepancy of any class.
func (r CheckReport) Passed() bool {
	return len(r.Discrepancies) == 0
}

// ByClass returns the discrepancies of one class, preserving report order.
func (r CheckReport) ByClass(class DiscrepancyClass) []Discrepancy {
	var out []Discrepancy

	for _, d := range r.Discrepancies {
		if d.Class == class {
			out = append(out, d)
		}
	}

	return out
}

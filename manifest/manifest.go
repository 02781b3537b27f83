// Package manifest models the manifest.json document embedded in every
// lgx package: parsing with per-field errors, canonical serialization,
// field validation, and the variant completeness invariant.
package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/meigma/lgx/pathnorm"
)

// CurrentVersion is the manifest schema version written by this library.
const CurrentVersion = "0.1.0"

// Manifest is the package metadata document. Main maps lowercase
// variant names to the relative entry-point path inside that variant's
// subtree; keys are lowercased on every write path so lookups never
// depend on caller casing.
type Manifest struct {
	ManifestVersion string
	Name            string
	Version         string
	Description     string
	Author          string
	Type            string
	Category        string
	// Icon is optional on parse and defaults to empty; it is always
	// present in serialized output.
	Icon         string
	Dependencies []string
	Main         map[string]string
}

// New returns a skeleton manifest for a freshly created package.
func New(name string) *Manifest {
	return &Manifest{
		ManifestVersion: CurrentVersion,
		Name:            pathnorm.ToLower(name),
		Version:         "0.0.1",
		Dependencies:    []string{},
		Main:            map[string]string{},
	}
}

// manifestJSON fixes the canonical field order for serialization.
type manifestJSON struct {
	ManifestVersion string            `json:"manifestVersion"`
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Author          string            `json:"author"`
	Type            string            `json:"type"`
	Category        string            `json:"category"`
	Icon            string            `json:"icon"`
	Dependencies    []string          `json:"dependencies"`
	Main            map[string]string `json:"main"`
}

// Parse decodes and validates the shape of a manifest document. Every
// required field that is missing or has the wrong JSON type produces an
// error naming that field. Mixed-case main keys are lowercased, not
// rejected.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	m := &Manifest{
		Dependencies: []string{},
		Main:         map[string]string{},
	}

	stringFields := []struct {
		name string
		dst  *string
	}{
		{"manifestVersion", &m.ManifestVersion},
		{"name", &m.Name},
		{"version", &m.Version},
		{"description", &m.Description},
		{"author", &m.Author},
		{"type", &m.Type},
		{"category", &m.Category},
	}
	for _, f := range stringFields {
		v, ok := raw[f.name]
		if !ok || string(v) == "null" {
			return nil, fmt.Errorf("missing or invalid %q field", f.name)
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return nil, fmt.Errorf("missing or invalid %q field", f.name)
		}
	}

	// icon is tolerated as absent for compatibility with manifests
	// written before the field existed.
	if v, ok := raw["icon"]; ok {
		if err := json.Unmarshal(v, &m.Icon); err != nil {
			return nil, fmt.Errorf("missing or invalid %q field", "icon")
		}
	}

	depsRaw, ok := raw["dependencies"]
	if !ok {
		return nil, fmt.Errorf("missing or invalid %q field", "dependencies")
	}
	if err := json.Unmarshal(depsRaw, &m.Dependencies); err != nil {
		return nil, fmt.Errorf("missing or invalid %q field", "dependencies")
	}
	if m.Dependencies == nil {
		return nil, fmt.Errorf("missing or invalid %q field", "dependencies")
	}

	mainRaw, ok := raw["main"]
	if !ok {
		return nil, fmt.Errorf("missing or invalid %q field", "main")
	}
	var main map[string]string
	if err := json.Unmarshal(mainRaw, &main); err != nil {
		return nil, fmt.Errorf("missing or invalid %q field", "main")
	}
	if main == nil {
		return nil, fmt.Errorf("missing or invalid %q field", "main")
	}
	for k, v := range main {
		m.Main[pathnorm.ToLower(k)] = v
	}

	return m, nil
}

// Serialize emits the canonical JSON form: fixed field order, 2-space
// indentation, main keys in lexicographic order. Output is re-derived
// from current state, never round-tripped from the parsed text, so
// equal manifests always serialize to equal bytes.
func (m *Manifest) Serialize() ([]byte, error) {
	doc := manifestJSON{
		ManifestVersion: m.ManifestVersion,
		Name:            m.Name,
		Version:         m.Version,
		Description:     m.Description,
		Author:          m.Author,
		Type:            m.Type,
		Category:        m.Category,
		Icon:            m.Icon,
		Dependencies:    m.Dependencies,
		Main:            m.Main,
	}
	if doc.Dependencies == nil {
		doc.Dependencies = []string{}
	}
	if doc.Main == nil {
		doc.Main = map[string]string{}
	}
	// encoding/json sorts map keys, which pins the main object order.
	return json.MarshalIndent(doc, "", "  ")
}

// Validate checks field-level constraints and returns every violation.
func (m *Manifest) Validate() []error {
	var errs []error

	if !IsVersionSupported(m.ManifestVersion) {
		errs = append(errs, fmt.Errorf("unsupported manifest version: %s", m.ManifestVersion))
	}
	if m.Name == "" {
		errs = append(errs, fmt.Errorf("'name' field is empty"))
	}
	if m.Version == "" {
		errs = append(errs, fmt.Errorf("'version' field is empty"))
	}

	for _, variant := range m.Variants() {
		if variant != pathnorm.ToLower(variant) {
			errs = append(errs, fmt.Errorf("variant key %q is not lowercase", variant))
		}
		if err := pathnorm.ValidateArchivePath(m.Main[variant]); err != nil {
			errs = append(errs, fmt.Errorf("invalid main path for %q: %w", variant, err))
		}
	}

	return errs
}

// ValidateCompleteness checks the bidirectional invariant between main
// entries and on-disk variant directories: every main key needs a
// variant directory and every variant directory needs a main key. Both
// sides are case-normalized before comparison.
func (m *Manifest) ValidateCompleteness(existingVariants []string) []error {
	var errs []error

	existing := make(map[string]bool, len(existingVariants))
	for _, v := range existingVariants {
		existing[pathnorm.ToLower(v)] = true
	}

	for _, variant := range m.Variants() {
		if !existing[variant] {
			errs = append(errs, fmt.Errorf("main[%s] has no corresponding variant directory", variant))
		}
	}

	var orphans []string
	for v := range existing {
		if _, ok := m.Main[v]; !ok {
			orphans = append(orphans, v)
		}
	}
	sort.Strings(orphans)
	for _, v := range orphans {
		errs = append(errs, fmt.Errorf("variant %q has no main entry", v))
	}

	return errs
}

// SetMain records the entry point for a variant, lowercasing the key.
func (m *Manifest) SetMain(variant, path string) {
	if m.Main == nil {
		m.Main = map[string]string{}
	}
	m.Main[pathnorm.ToLower(variant)] = path
}

// RemoveMain deletes a variant's entry point, matching case-insensitively.
func (m *Manifest) RemoveMain(variant string) {
	delete(m.Main, pathnorm.ToLower(variant))
}

// GetMain looks up a variant's entry point, matching case-insensitively.
func (m *Manifest) GetMain(variant string) (string, bool) {
	path, ok := m.Main[pathnorm.ToLower(variant)]
	return path, ok
}

// Variants returns the sorted set of variant names in main.
func (m *Manifest) Variants() []string {
	out := make([]string, 0, len(m.Main))
	for k := range m.Main {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NormalizeName lowercases the package name in place.
func (m *Manifest) NormalizeName() {
	m.Name = pathnorm.ToLower(m.Name)
}

// NormalizeVariantKeys lowercases every main key in place.
func (m *Manifest) NormalizeVariantKeys() {
	normalized := make(map[string]string, len(m.Main))
	for k, v := range m.Main {
		normalized[pathnorm.ToLower(k)] = v
	}
	m.Main = normalized
}

// IsVersionSupported reports whether a manifest schema version can be
// read by this library. Only major version 0 is supported; a version
// with no dot or a non-numeric major is unsupported, not an error.
func IsVersionSupported(version string) bool {
	if !strings.Contains(version, ".") {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return v.Major() == 0
}

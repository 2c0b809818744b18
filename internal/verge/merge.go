// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

// Merge returns c with every field present in patch applied on top of it.
// Absent patch fields leave c's value untouched. theme_setting is taken from
// the patch as one unit when present. Neither c nor patch is modified.
func (c Config) Merge(patch Config) Config {
	out := c.Clone()
	for _, f := range configFields {
		if f.present(&patch) {
			f.assign(&out, &patch)
		}
	}
	return out
}

// Clone returns a deep copy of c sharing no pointers with it.
func (c Config) Clone() Config {
	var out Config
	for _, f := range configFields {
		f.assign(&out, &c)
	}
	return out
}

// Equal reports whether both documents carry the same fields with the same values.
func (c Config) Equal(other Config) bool {
	for _, f := range configFields {
		if !f.equal(&c, &other) {
			return false
		}
	}
	return true
}

// IsZero reports whether every field is unset.
func (c Config) IsZero() bool {
	return len(c.PresentKeys()) == 0
}

// PresentKeys lists the top-level keys set in c.
func (c Config) PresentKeys() []string {
	var keys []string
	for _, f := range configFields {
		if f.present(&c) {
			keys = append(keys, f.key)
		}
	}
	return keys
}

// Changed lists the top-level keys whose values differ between old and updated.
func Changed(old, updated Config) []string {
	var keys []string
	for _, f := range configFields {
		if !f.equal(&old, &updated) {
			keys = append(keys, f.key)
		}
	}
	return keys
}

// Clone returns a deep copy of t, or nil for a nil theme.
func (t *Theme) Clone() *Theme {
	if t == nil {
		return nil
	}
	out := &Theme{}
	for _, f := range themeFields {
		f.assign(out, t)
	}
	return out
}

// Equal compares two theme blocks field by field. Two nil themes are equal;
// a nil theme never equals an empty one.
func (t *Theme) Equal(other *Theme) bool {
	if t == nil || other == nil {
		return t == other
	}
	for _, f := range themeFields {
		if !f.equal(t, other) {
			return false
		}
	}
	return true
}

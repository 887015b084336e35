package resource

import "maps"

// NameField is the entry field holding the resource name.
const NameField = "name"

// Entry is a single stored resource record. Fields are untyped; once
// persisted an entry always carries a non-empty "name".
type Entry map[string]any

// EntryFrom converts a decoded payload value into an Entry.
func EntryFrom(v any) (Entry, bool) {
	switch e := v.(type) {
	case Entry:
		return e, e != nil
	case map[string]any:
		return Entry(e), e != nil
	default:
		return nil, false
	}
}

// Name returns the entry's name when present and non-empty.
func (e Entry) Name() (string, bool) {
	name, ok := e[NameField].(string)
	return name, ok && name != ""
}

// HasName reports whether the name field is present at all, regardless of
// its value.
func (e Entry) HasName() bool {
	_, ok := e[NameField]
	return ok
}

// Merge returns a new entry holding e's fields overlaid with incoming's.
// Neither input is modified.
func (e Entry) Merge(incoming Entry) Entry {
	merged := make(Entry, len(e)+len(incoming))
	maps.Copy(merged, e)
	maps.Copy(merged, incoming)
	return merged
}

// Clone returns a shallow copy of e.
func (e Entry) Clone() Entry {
	return maps.Clone(e)
}

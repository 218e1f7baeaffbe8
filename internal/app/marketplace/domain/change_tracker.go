package domain

import "sort"

// ChangeTracker records which columns of an aggregate were written since it
// was created or loaded. Repositories build UPDATE mutations from it, so a
// PATCH touching one field never rewrites the rest of the row.
type ChangeTracker struct {
	dirty map[string]struct{}
}

// NewChangeTracker returns a tracker with nothing marked.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: map[string]struct{}{}}
}

// MarkDirty records the given field names as written.
func (ct *ChangeTracker) MarkDirty(fields ...string) {
	for _, f := range fields {
		ct.dirty[f] = struct{}{}
	}
}

// Dirty reports whether field was written.
func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.dirty[field]
	return ok
}

// HasChanges reports whether an update mutation is needed at all.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// DirtyFields lists the written field names in sorted order.
func (ct *ChangeTracker) DirtyFields() []string {
	fields := make([]string, 0, len(ct.dirty))
	for f := range ct.dirty {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

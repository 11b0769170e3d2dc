package browse

import (
	"strings"

	"github.com/ganot/grantmap/internal/domain/grant"
)

// State is the mutable view of one viewer: the active filters, the entries
// they leave visible, the navigation cursor and the detail modal. It has a
// single owner and is not safe for concurrent use.
type State struct {
	catalog   *Catalog
	filters   Filters
	visible   []grant.Grantee
	cursor    int
	modalOpen bool
}

// NewState starts with no filters and every entry visible.
func NewState(c *Catalog) *State {
	s := &State{catalog: c}
	s.Reset()
	return s
}

// ApplyFilters replaces the filters and rewinds the cursor.
func (s *State) ApplyFilters(f Filters) {
	s.filters = f
	s.visible = s.catalog.Filter(f)
	s.cursor = 0
}

// Reset clears every filter.
func (s *State) Reset() {
	s.ApplyFilters(Filters{})
}

// Filters returns the active filters.
func (s *State) Filters() Filters { return s.filters }

// Visible returns the entries that pass the filters.
func (s *State) Visible() []grant.Grantee { return s.visible }

// Stats summarizes the visible entries.
func (s *State) Stats() Stats { return ComputeStats(s.visible) }

// Counter returns the 1-based cursor position and the visible count, or
// (0, 0) when nothing is visible.
func (s *State) Counter() (current, total int) {
	if len(s.visible) == 0 {
		return 0, 0
	}
	return s.cursor + 1, len(s.visible)
}

// Current returns the entry under the cursor.
func (s *State) Current() (grant.Grantee, bool) {
	if len(s.visible) == 0 {
		return grant.Grantee{}, false
	}
	return s.visible[s.cursor], true
}

// Next moves to the following entry, wrapping around, and shows its detail.
func (s *State) Next() (grant.Grantee, bool) {
	return s.step(1)
}

// Prev moves to the preceding entry, wrapping around, and shows its detail.
func (s *State) Prev() (grant.Grantee, bool) {
	return s.step(-1)
}

func (s *State) step(delta int) (grant.Grantee, bool) {
	n := len(s.visible)
	if n == 0 {
		return grant.Grantee{}, false
	}
	s.cursor = ((s.cursor+delta)%n + n) % n
	s.modalOpen = true
	return s.visible[s.cursor], true
}

// Focus moves the cursor to the visible entry named name, ignoring case, and
// opens its detail. It reports false when no visible entry has that name.
func (s *State) Focus(name string) (grant.Grantee, bool) {
	for i, g := range s.visible {
		if strings.EqualFold(g.Name, name) {
			s.cursor = i
			s.modalOpen = true
			return g, true
		}
	}
	return grant.Grantee{}, false
}

// Open shows the detail of the entry under the cursor.
func (s *State) Open() bool {
	if len(s.visible) == 0 {
		return false
	}
	s.modalOpen = true
	return true
}

// Close hides the detail modal.
func (s *State) Close() {
	s.modalOpen = false
}

// ModalOpen reports whether the detail modal is showing.
func (s *State) ModalOpen() bool { return s.modalOpen }

// Selected returns the entry shown in the modal, if it is open.
func (s *State) Selected() (grant.Grantee, bool) {
	if !s.modalOpen {
		return grant.Grantee{}, false
	}
	return s.Current()
}

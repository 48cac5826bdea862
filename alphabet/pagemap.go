package alphabet

// pagedMap maps BMP code points (0..65535) to dense alphabet slots.
// It's a two-level page table:
//   - top[hi] = page index (1..numPages), or 0 meaning "page absent".
//   - pages is a flat array of numPages*256 entries.
//
// Slots are stored as index+1, so 0 means "not part of the alphabet".
// Runes outside the BMP go to an overflow map, which is nil for the usual
// alphabets.
type pagedMap struct {
	top      [256]uint16 // page index (1-based); 0 means none
	pages    []uint16    // flat: numPages*256
	overflow map[rune]uint16
}

// slot returns the dense slot for r, 0 if absent.
func (m *pagedMap) slot(r rune) uint16 {
	if r < 0 || r > 0xFFFF {
		return m.overflow[r] // nil map reads are fine
	}
	pi := m.top[r>>8]
	if pi == 0 {
		return 0
	}
	base := int(pi-1) << 8 // *256
	return m.pages[base+int(r&0xFF)]
}

func (m *pagedMap) ensurePage(hi int) uint16 {
	pi := m.top[hi]
	if pi != 0 {
		return pi
	}
	m.pages = append(m.pages, make([]uint16, 256)...)
	pi = uint16(len(m.pages) >> 8) // number of pages, 1-based index
	m.top[hi] = pi
	return pi
}

// set sets mapping r -> slot.
func (m *pagedMap) set(r rune, slot uint16) {
	if r < 0 || r > 0xFFFF {
		if m.overflow == nil {
			m.overflow = make(map[rune]uint16)
		}
		m.overflow[r] = slot
		return
	}
	pi := m.ensurePage(int(r >> 8))
	base := int(pi-1) << 8
	m.pages[base+int(r&0xFF)] = slot
}

// numPages returns the number of allocated pages.
func (m *pagedMap) numPages() int { return len(m.pages) >> 8 }

package overlay

// Shop is the upgrade menu's open flag and selection cursor.
type Shop struct {
	active bool
	cursor int
	count  int
}

// Open shows the menu over count items with the cursor on the first one.
func (s *Shop) Open(count int) {
	s.active = count > 0
	s.count = count
	s.cursor = 0
}

// Close hides the menu.
func (s *Shop) Close() {
	s.active = false
}

// Active reports whether the menu is showing.
func (s *Shop) Active() bool {
	return s.active
}

// Cursor returns the selected item index.
func (s *Shop) Cursor() int {
	return s.cursor
}

// Next moves the cursor down, wrapping to the top.
func (s *Shop) Next() {
	if s.count > 0 {
		s.cursor = (s.cursor + 1) % s.count
	}
}

// Prev moves the cursor up, wrapping to the bottom.
func (s *Shop) Prev() {
	if s.count > 0 {
		s.cursor = (s.cursor - 1 + s.count) % s.count
	}
}

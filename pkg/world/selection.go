package world

// Selection holds two cube indices, primary and secondary. -1 means empty.
type Selection struct {
	primary   int
	secondary int
}

// NewSelection returns a selection with both slots empty.
func NewSelection() Selection {
	return Selection{primary: -1, secondary: -1}
}

// Primary returns the primary cube index.
func (s Selection) Primary() (int, bool) {
	return s.primary, s.primary >= 0
}

// Secondary returns the secondary cube index.
func (s Selection) Secondary() (int, bool) {
	return s.secondary, s.secondary >= 0
}

// Set fills both slots directly. Pass -1 to empty a slot.
func (s *Selection) Set(primary, secondary int) {
	s.primary, s.secondary = max(primary, -1), max(secondary, -1)
}

// CyclePrimary moves the primary slot by step through n cubes, wrapping
// around. From empty it starts at the first (step > 0) or last cube.
func (s *Selection) CyclePrimary(n, step int) {
	s.primary = cycle(s.primary, n, step)
}

// CycleSecondary moves the secondary slot forward through n cubes.
func (s *Selection) CycleSecondary(n int) {
	s.secondary = cycle(s.secondary, n, 1)
}

// Clear empties both slots.
func (s *Selection) Clear() {
	s.primary, s.secondary = -1, -1
}

func cycle(i, n, step int) int {
	if n <= 0 {
		return -1
	}
	if i < 0 || i >= n {
		if step < 0 {
			return n - 1
		}
		return 0
	}
	return ((i+step)%n + n) % n
}

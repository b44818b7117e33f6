package tui

// truncate shortens a string to a maximum length.
// Widths below the ellipsis length can occur on tiny terminals,
// so they fall back to a hard cut instead of slicing negative.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 4 {
		if max < 0 {
			max = 0
		}
		return s[:max]
	}
	return s[:max-3] + "..."
}

// calculateVisibleLogLines calculates how many log lines can fit in the panel
func (m Model) calculateVisibleLogLines() int {
	// Log panel is the top left one, 60% of height
	topHeight := int(float64(m.height) * 0.6)
	// Reserve space for borders, title, status line and help text.
	// Must match the calculation in renderLogPanel: height - 8
	visibleLines := topHeight - 8
	if visibleLines < 3 {
		visibleLines = 3
	}
	return visibleLines
}

// calculateMaxScroll calculates the maximum scroll position
func (m Model) calculateMaxScroll() int {
	visibleLines := m.calculateVisibleLogLines()
	maxScroll := len(m.logs) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	return maxScroll
}

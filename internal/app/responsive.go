package app

// LayoutMode represents the display width category for the status bar.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // <40 chars: battery only
	LayoutMedium                   // 40-79: battery and clock style
	LayoutWide                     // 80+: everything plus key hints
)

// GetLayoutMode returns the appropriate layout mode for the given terminal width.
func GetLayoutMode(width int) LayoutMode {
	switch {
	case width < 40:
		return LayoutNarrow
	case width < 80:
		return LayoutMedium
	default:
		return LayoutWide
	}
}

// StatusBarHeight returns the height of the status bar (always 1 row).
func StatusBarHeight() int {
	return 1
}

// ContentHeight returns the rows left for the watchface after the status bar.
func ContentHeight(totalHeight int) int {
	h := totalHeight - StatusBarHeight()
	if h < 0 {
		return 0
	}
	return h
}

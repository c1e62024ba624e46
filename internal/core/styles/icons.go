package styles

// Glyphs used by the browser. Plain unicode so they render without a
// patched font.
var (
	IconCursor  = "▸"
	IconTag     = "#"
	IconSearch  = "/"
	IconDivider = "─"
)

package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAsIs prints paths the way they were given.
	PathModeAsIs PathMode = iota
	PathModeAbsolute
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Context prints the offending source line with a caret under it.
	Context bool
}

// JSONOpts configures JSON and msgpack output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, 0 - без ограничений
	// IncludeTimings adds per-phase analysis timings to each file.
	IncludeTimings bool
	Indent         bool
}

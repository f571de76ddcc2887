// Package text lays out Unicode text into visually ordered lines of runs.
//
// The pipeline separates the font from the layout:
//
//   - Source: a parsed TTF/OTF file, shared by all sizes
//   - Face: a Source at one pixel size; implements Font
//   - Layout: text broken into lines for a Font and a width
//
// # Example usage
//
//	src, err := text.LoadSource("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	face, err := text.NewFace(src, 24)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l := text.NewLayout(face, text.WithWidth(320))
//	l.SetText("Hello, GoGPU!\nשלום")
//	for _, line := range l.Lines() {
//	    for _, run := range line.Runs {
//	        fmt.Println(run.Direction, run.Glyphs)
//	    }
//	}
//
// # Layout passes
//
// Segmentation runs once per text change. Bidi runs come from
// golang.org/x/text/unicode/bidi and line-break opportunities from the
// UAX #14 breaker of github.com/gioui/uax. The merged positions cut the text
// into items; a span ending in a line terminator is split into a text item
// and a line-break item, and trailing white space is measured separately so
// that it can be dropped at a wrap point.
//
// Line building runs on every text or geometry change. Items are appended
// to the current line while they fit, a line wraps before an item that does
// not, and an item wider than the whole line is split at the longest prefix
// that fits. Adjacent items of the same direction merge into one run.
//
// Shaping runs after every line build: each run is shaped as a whole with
// the HarfBuzz port of github.com/go-text/typesetting.
package text

package watchtui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// highlightJSON colorizes a pretty-printed JSON payload for the detail
// panel. On any failure the plain text comes back unchanged.
func highlightJSON(src string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, src, "json", "terminal256", "catppuccin-mocha"); err != nil {
		return src
	}
	return strings.TrimRight(b.String(), "\n")
}

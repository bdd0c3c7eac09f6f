package docs

import "embed"

// FS contains the Markdown guide bundled with the jot binary.
//
//go:embed guide
var FS embed.FS

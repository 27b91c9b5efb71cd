package presets

import "embed"

// FS contains bundled egg presets shipped with the binary.
//
//go:embed *.yaml
var FS embed.FS

package assets

import _ "embed"

// OptionsData holds the raw JSON fallback catalog of selectable models,
// agents and security analyzers, used when the remote options endpoints are
// unreachable.
//
//go:embed options.json
var OptionsData []byte

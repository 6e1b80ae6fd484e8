// Package configs embeds the configuration template written by
// `feedlens config init`.
//
// The template documents every key understood by internal/config and
// carries the built-in defaults, so a freshly initialized file changes
// nothing until edited.
package configs

import _ "embed"

// UserConfigTemplate is written to $XDG_CONFIG_HOME/feedlens/config.yaml.
//
//go:embed config.example.yaml
var UserConfigTemplate string

// Package config loads YAML configuration files. Precedence is handled by
// the CLI layer: command-line flags override the local file in the scanned
// root, which overrides the global file under the XDG config directory.
package config

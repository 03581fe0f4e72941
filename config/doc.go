// Package config holds the typed run configuration of xxformat and loads
// optional YAML or JSON configuration files. Values are layered: built-in
// defaults, then the config file, then explicitly set command-line flags.
package config

// Package version carries the build identity stamped into traces,
// logs, and the CLI's --version output.
package version

// Current defines the application version.
// It defaults to "dev" but is overwritten at build time via -ldflags.
var Current = "dev"

const AppName = "packplan"
const License = "Apache-2.0"

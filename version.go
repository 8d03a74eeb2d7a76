// Package envied holds metadata shared across the CLI.
package envied

// Version is the CLI version reported by --version.
const Version = "0.3.0"

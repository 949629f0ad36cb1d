// Package flaskstudio holds metadata shared across the CLI.
package flaskstudio

// Version is the current Flask Studio release.
const Version = "0.1.0"

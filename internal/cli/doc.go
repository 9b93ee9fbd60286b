// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It layers
// CLI flags over the environment and run-profile settings from the config
// package and produces the application's configuration.
package cli

// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: load the maze, search it
// while rendering frames, print the final grid and the result message. It is
// decoupled from any specific entrypoint like a CLI.
package app

// Package config resolves the settings of one maze run.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. built-in defaults (Defaults)
//  2. a .env file and MAZEWALK_* environment variables (Environ, ApplyEnv)
//  3. an HCL run profile (LoadProfile, ApplyProfile)
//  4. command-line flags, applied by the cli package
//
// A run profile is a small HCL file:
//
//	animate   = true
//	delay     = "50ms"
//	strategy  = "parallel"
//	workers   = env.MAZEWALK_WORKERS
//
//	broadcast {
//	  url = "http://localhost:3000/socket.io/"
//	}
//
// Every attribute is optional. The variable env exposes the merged
// environment as an object of strings.
package config

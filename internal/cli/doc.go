// Package cli provides the interactive FoodWatch command-line client.
//
// It wires configuration, local storage, the auth services, and an
// interactive REPL around a session manager. Typical flow: restore a
// persisted session on startup, prompt for credentials, and execute user
// commands.
//
// Key features:
//   - Signup / Login / Logout with a persisted session token
//   - Whoami for the current account
//   - Admin account management: list, activate, deactivate, remove
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

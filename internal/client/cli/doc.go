// Package cli provides the interactive blog command-line client.
//
// It wires configuration, local storage, the API client and an
// interactive REPL. On start it restores a persisted session, loads
// the first page of posts, and then executes user commands until
// "exit".
//
// Key features:
//   - Register / Login / Logout with a session that survives restarts
//   - Browse posts page by page, show a single post with its comments
//   - Create, edit and delete posts (edits and deletes show up
//     immediately and are rolled back if the server refuses)
//   - Manage categories and leave comments
//
// The REPL is started via App.Root(ctx), which blocks until the user
// exits.
package cli

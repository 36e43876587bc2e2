// Package cli provides the interactive pokekeeper command-line client.
//
// It wires configuration, local storage, the catalog client, the asset cache
// and an interactive REPL. A persisted session is restored on start, and a
// background watcher reports favorites changes while the REPL runs.
//
// Commands:
//   - register / login / logout / whoami
//   - browse [offset], search <text> [offset], show <id|name>
//   - fav <id|name>, unfav <id>, favs
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Browse(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Unfav(ctx context.Context, args []string) error
	Favs(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit", and
// dispatches them to a.
//
//	Not logged in:
//	  - help | register | login | browse [offset] | search <text> [offset]
//	  - show <id|name> | exit
//
//	Logged in, additionally:
//	  - whoami | fav <id|name> | unfav <id> | favs | logout
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, say func(...any)) {
	for {
		say(fmt.Sprintf("pk%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				say("Available commands: browse [offset], search <text> [offset], show <id|name>, fav <id|name>, unfav <id>, favs, whoami, logout, exit")
			} else {
				say("Available commands: register, login, browse [offset], search <text> [offset], show <id|name>, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "browse":
			cmdErr = a.Browse(ctx, args)

		case "search":
			cmdErr = a.Search(ctx, args)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "fav":
			cmdErr = a.Fav(ctx, args)

		case "unfav":
			cmdErr = a.Unfav(ctx, args)

		case "favs":
			cmdErr = a.Favs(ctx)

		case "exit", "quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd)
		}

		if cmdErr != nil {
			say("Error:", userMessage(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

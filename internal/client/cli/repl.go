package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Create(ctx context.Context) error
	List(ctx context.Context, term string) error
	Show(ctx context.Context, id string) error
	Forgot(ctx context.Context) error
	Menu(ctx context.Context, query string) error
	Open(ctx context.Context, path string) error
}

// runREPL starts a simple read-eval-print loop for the admin console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	Not logged in:
//	  - help             show available commands
//	  - login            sign in
//	  - forgot           reset the password with an emailed code
//	  - open <path>      open a view by path
//	  - exit | quit      leave the program
//
//	Logged in, additionally:
//	  - dashboard        statistics and the newest records
//	  - create           create a super admin
//	  - list [term]      list super admins, optionally filtered
//	  - show <id>        details of one super admin
//	  - menu [query]     navigation menu, optionally filtered
//	  - logout           end the session
//
// Protected views are guarded, so they also work when typed while logged
// out: the guard sends the user to the login view instead.
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("panel %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		rest := strings.Join(args, " ")

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: dashboard, create, (l)ist [term], show <id>, menu [query], open <path>, logout, exit")
			} else {
				printlnFn("Available commands: login, forgot, open <path>, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)

		case "create":
			cmdErr = a.Create(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, rest)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			cmdErr = a.Show(ctx, args[0])

		case "forgot":
			cmdErr = a.Forgot(ctx)

		case "menu":
			cmdErr = a.Menu(ctx, rest)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

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
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ListUsers(ctx context.Context) error
	Deactivate(ctx context.Context, email string) error
	Activate(ctx context.Context, email string) error
	RemoveUser(ctx context.Context, email string) error
}

// runREPL starts a simple read–eval–print loop for the FoodWatch CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - signup             — create an account
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - whoami             — show the current account
//	  - logout             — log out
//	  - exit | quit        — leave the program
//
//	Logged in as an administrator, additionally:
//	  - users              — list all accounts
//	  - deactivate <email> — mark an account inactive
//	  - activate <email>   — mark an account active again
//	  - rmuser <email>     — remove an account entirely
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fw> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn("Available commands: whoami, users, deactivate <email>, activate <email>, rmuser <email>, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: whoami, logout, exit")
			default:
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "u", "users":
			_ = a.ListUsers(ctx)

		case "deactivate":
			if len(args) == 0 {
				printlnFn("Usage: deactivate <email>")
				continue
			}
			_ = a.Deactivate(ctx, args[0])

		case "activate":
			if len(args) == 0 {
				printlnFn("Usage: activate <email>")
				continue
			}
			_ = a.Activate(ctx, args[0])

		case "rmuser":
			if len(args) == 0 {
				printlnFn("Usage: rmuser <email>")
				continue
			}
			_ = a.RemoveUser(ctx, args[0])

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	println(args ...any)
	isLoggedIn(ctx context.Context) bool
	settle(ctx context.Context)
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Matches(ctx context.Context) error
	Whoami(ctx context.Context) error
	Register(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	DeleteUser(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, status, exit"
	helpLoggedIn  = "Available commands: (m)atches, whoami, passwd, register, reset, deluser, status, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the wcpredict CLI.
//
// Before every prompt it lets the app settle pending view changes (for
// example loading matches after a login). It then reads a line, parses the
// first token as the command, and dispatches to methods on 'a'. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are not printed here: the store turns
// failures into notifications which the app renders itself.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.settle(ctx)

		a.println(fmt.Sprintf("wc %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn(ctx) {
				a.println(helpLoggedIn)
			} else {
				a.println(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "m", "matches":
			_ = a.Matches(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "register":
			_ = a.Register(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "deluser":
			_ = a.DeleteUser(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			a.println("Bye!")
			return

		default:
			a.println("Unknown command:", parts[0])
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	report(err error)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
//	Not logged in: help, register, login, exit
//	Logged in:     help, (l)ist, add, delete, whoami, logout, exit
//
// Command errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "nutriscan %s> ", statusFn())
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		var cmdErr error

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist, add, delete, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "whoami":
			cmdErr = requireLogin(a, a.WhoAmI, ctx, w)

		case "l", "list":
			cmdErr = requireLogin(a, a.List, ctx, w)

		case "add":
			cmdErr = requireLogin(a, a.Add, ctx, w)

		case "delete":
			cmdErr = requireLogin(a, a.Delete, ctx, w)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.report(cmdErr)
		}
		if err != nil {
			return
		}
	}
}

func requireLogin(a execIface, fn func(context.Context) error, ctx context.Context, w io.Writer) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(w, "Please login first")
		return nil
	}
	return fn(ctx)
}

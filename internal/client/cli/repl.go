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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	AddEvent(ctx context.Context) error
	EditEvent(ctx context.Context) error
	DeleteEvent(ctx context.Context) error
	RegisterForEvent(ctx context.Context) error
	CancelRegistration(ctx context.Context) error
	MyRegistrations(ctx context.Context) error
	SetReminder(ctx context.Context) error
	CancelReminder(ctx context.Context) error
	MyReminders(ctx context.Context) error
	Dashboard(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the event-manager CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("em %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, reg, cancelreg, myregs, remind, cancelremind, myreminders, dashboard, changepw, logout, exit")
				if a.isAdmin() {
					printlnFn("Admin commands: addevent, editevent, delevent")
				}
			} else {
				printlnFn("Available commands: register, login, forgot, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "changepw":
			_ = a.ChangePassword(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "addevent":
			_ = a.AddEvent(ctx)

		case "editevent":
			_ = a.EditEvent(ctx)

		case "delevent":
			_ = a.DeleteEvent(ctx)

		case "reg":
			_ = a.RegisterForEvent(ctx)

		case "cancelreg":
			_ = a.CancelRegistration(ctx)

		case "myregs":
			_ = a.MyRegistrations(ctx)

		case "remind":
			_ = a.SetReminder(ctx)

		case "cancelremind":
			_ = a.CancelReminder(ctx)

		case "myreminders":
			_ = a.MyReminders(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

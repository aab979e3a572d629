package client

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL dispatches to. The real
// App satisfies it; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Report(ctx context.Context) error
	Track(ctx context.Context) error
	Reports(ctx context.Context) error
	Resolve(ctx context.Context) error
	Reject(ctx context.Context) error
	Delete(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a command per line and dispatches it. Commands are gated by
// session state: logged out users can only register or log in, citizens get
// the report/track pair, admins get the review commands. Handler errors are
// printed by the handlers themselves; the loop only cares about I/O. Exits on
// scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("city> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn("Available commands: register, login, adminlogin, exit")
			case a.isAdmin():
				printlnFn("Available commands: reports, resolve, reject, delete, logout, exit")
			default:
				printlnFn("Available commands: report, track, delete, logout, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "adminlogin":
			_ = a.AdminLogin(ctx)

		case "report":
			if requireLogin(a) {
				_ = a.Report(ctx)
			}

		case "track":
			if requireLogin(a) {
				_ = a.Track(ctx)
			}

		case "reports":
			if requireAdmin(a) {
				_ = a.Reports(ctx)
			}

		case "resolve":
			if requireAdmin(a) {
				_ = a.Resolve(ctx)
			}

		case "reject":
			if requireAdmin(a) {
				_ = a.Reject(ctx)
			}

		case "delete":
			if requireLogin(a) {
				_ = a.Delete(ctx)
			}

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(a execIface) bool {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return false
	}
	return true
}

func requireAdmin(a execIface) bool {
	if !a.isAdmin() {
		printlnFn("Admin access required")
		return false
	}
	return true
}

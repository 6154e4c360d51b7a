package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Say(ctx context.Context, text string) error
	Journal(ctx context.Context) error
	Entries(ctx context.Context) error
	Mood(ctx context.Context) error
	Trend(ctx context.Context) error
	Profile(ctx context.Context) error
	Name(ctx context.Context) error
	SetAI(on bool) error
	Logout(ctx context.Context) error
	Delete(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a. It returns on
// scanner EOF or on "exit"/"quit". Handler errors are printed and otherwise
// ignored.
//
//	Always:
//	  - help                 show available commands
//	  - say <text>           talk to MindEase (plain text without a command works too)
//	  - journal              write a journal entry
//	  - entries              list journal entries (cloud and device)
//	  - ai on|off            toggle remote AI replies and analysis
//	  - exit | quit          leave the program
//
//	Signed out:
//	  - login                sign in with an access token
//
//	Signed in:
//	  - mood                 log a quick mood check-in
//	  - trend                show the last seven mood levels
//	  - profile              show name and streak
//	  - name                 change display name
//	  - logout               sign out and wipe device data
//	  - delete               delete the account's cloud data
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mindease %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: say, journal, entries, mood, trend, profile, name, ai on|off, logout, delete, exit")
			} else {
				printlnFn("Available commands: say, journal, entries, login, ai on|off, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "say":
			err = a.Say(ctx, rest)

		case "journal":
			err = a.Journal(ctx)

		case "entries", "list":
			err = a.Entries(ctx)

		case "mood":
			err = a.Mood(ctx)

		case "trend", "history":
			err = a.Trend(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "name":
			err = a.Name(ctx)

		case "ai":
			switch strings.ToLower(rest) {
			case "on":
				err = a.SetAI(true)
			case "off":
				err = a.SetAI(false)
			default:
				printlnFn("Usage: ai on|off")
			}

		case "logout":
			err = a.Logout(ctx)

		case "delete":
			err = a.Delete(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			err = a.Say(ctx, line)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

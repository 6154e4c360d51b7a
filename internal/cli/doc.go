// Package cli is the interactive MindEase terminal client.
//
// The App type owns the collaborators (session, response pipeline, journal
// reconciler, mood service) and exposes one method per REPL command. The REPL
// itself only parses lines and dispatches; handlers print their own results
// and errors so that one failing command never ends the loop.
package cli

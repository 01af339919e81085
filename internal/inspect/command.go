package inspect

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// CommandContext describes how the shell resolves a command name and whether
// a manual page exists for it. A command that does not resolve is still a
// valid context: the query may well be about a tool that is not installed.
type CommandContext struct {
	Name    string
	Type    string
	ManPage bool
}

// Command inspects a command name and returns its context.
func Command(name string) *CommandContext {
	return CommandWithDebug(name, false)
}

// CommandWithDebug inspects a command name with optional debug logging.
func CommandWithDebug(name string, debug bool) *CommandContext {
	cc := &CommandContext{
		Name:    name,
		Type:    commandType(name),
		ManPage: hasManPage(name),
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Inspect: command %s (type=%q, man=%v)\n",
			cc.Name, cc.Type, cc.ManPage)
	}

	return cc
}

// commandType resolves the name through the user's shell so aliases and
// functions are visible, not just binaries on PATH.
func commandType(name string) string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	script := "type " + shellquote.Join(name)
	out, err := exec.Command(shell, "-c", script).Output()
	if err != nil {
		return ""
	}

	// type may print multiple lines for functions; the first states the kind
	lines := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)
	return lines[0]
}

// hasManPage checks whether man can locate a page for the name.
func hasManPage(name string) bool {
	return exec.Command("man", "-w", name).Run() == nil
}

// Command matchac compiles matcha templates to Gleam source modules.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	matchac(os.Args)
}

// TestEnvironment is true when testing matchac, false otherwise. When
// true, exit is a no-op so tests can observe a non-zero status without
// killing the test process.
var TestEnvironment = false

func exit(status int) {
	if !TestEnvironment {
		os.Exit(status)
	}
}

func stderr(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(os.Stderr, l)
	}
}

func exitError(format string, a ...interface{}) {
	stderr(fmt.Sprintf(format, a...))
	exit(1)
}

var commandsHelp = map[string]func(){
	"matchac": func() {
		stderr(
			`matchac compiles matcha templates into Gleam source modules.`,
			``,
			`Usage:`,
			``,
			`	matchac <command> [arguments]`,
			``,
			`The commands are:`,
			``,
			`	build   compile every .matcha file under a directory`,
			`	watch   build once, then recompile files on save`,
			`	fmt     print a file's scanned tokens, concatenated`,
			``,
			`Use "matchac help <command>" for more information about a command.`,
		)
	},
	"build": func() {
		stderr(`usage: matchac build [dir]`, `Compiles every .matcha file found under dir (default ".").`)
	},
	"watch": func() {
		stderr(`usage: matchac watch [dir]`, `Builds dir once, then recompiles templates as they change.`)
	},
	"fmt": func() {
		stderr(`usage: matchac fmt file.matcha`, `Re-emits the scanned tokens of file, concatenated, for debugging the scanner.`)
	},
}

var commands = map[string]func(args []string) error{
	"build": func(args []string) error {
		fs := flag.NewFlagSet("build", flag.ContinueOnError)
		_ = fs.Parse(args)
		dir := "."
		if fs.NArg() > 0 {
			dir = fs.Arg(0)
		}
		return runBuild(dir)
	},
	"watch": func(args []string) error {
		fs := flag.NewFlagSet("watch", flag.ContinueOnError)
		_ = fs.Parse(args)
		dir := "."
		if fs.NArg() > 0 {
			dir = fs.Arg(0)
		}
		return runWatch(dir)
	},
	"fmt": func(args []string) error {
		fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
		_ = fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: matchac fmt file.matcha")
		}
		return runFmt(fs.Arg(0))
	},
}

func matchac(args []string) {
	if len(args) == 1 {
		commandsHelp["matchac"]()
		exit(0)
		return
	}
	name := args[1]
	if name == "help" {
		topic := "matchac"
		if len(args) > 2 {
			topic = args[2]
		}
		help, ok := commandsHelp[topic]
		if !ok {
			exitError("matchac help %s: unknown help topic. Run 'matchac help'.", topic)
			return
		}
		help()
		return
	}
	cmd, ok := commands[name]
	if !ok {
		stderr(fmt.Sprintf("matchac %s: unknown command", name), `Run 'matchac help' for usage.`)
		exit(1)
		return
	}
	if err := cmd(args[2:]); err != nil {
		exitError("matchac: %s", err)
	}
}

// cmd/jolt/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"jolt/cmd/jolt/commands"
	"jolt/internal/errors"
	"jolt/internal/repl"
)

const VERSION = "0.1.0"

// Build variables - can be set during build with ldflags
var (
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type command func(ctx context.Context, env commands.Env, args []string) error

var subcommands = map[string]command{
	"run":     commands.RunCommand,
	"repl":    commands.ReplCommand,
	"serve":   commands.ServeCommand,
	"history": commands.HistoryCommand,
	"tokens":  commands.TokensCommand,
	"parse":   commands.ParseCommand,
	"check":   commands.CheckCommand,
	"fmt":     commands.FmtCommand,
	"test":    commands.TestCommand,
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("jolt: ")

	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	switch args[0] {
	case "help", "-h", "--help", "-help":
		showUsage()
		return
	case "version", "-v", "--version", "-version":
		showVersion()
		return
	}

	name, rest := args[0], args[1:]
	cmd, ok := subcommands[name]
	if !ok {
		// jolt FILE is jolt run FILE.
		if filepath.Ext(name) != ".jolt" {
			if _, err := os.Stat(name); err != nil {
				fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
				showUsage()
				os.Exit(2)
			}
		}
		cmd, rest = commands.RunCommand, args
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := commands.Env{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: repl.IsTerminal(os.Stdin) && repl.IsTerminal(os.Stdout),
	}
	if err := cmd(ctx, env, rest); err != nil {
		stop()
		switch {
		case err == flag.ErrHelp:
			os.Exit(2)
		case errors.IsSyntax(err):
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		default:
			log.Fatalf("Error: %v", err)
		}
	}
}

func showUsage() {
	fmt.Println("Jolt - a small scripting language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  jolt <file.jolt>                 Run a Jolt program")
	fmt.Println("  jolt run <file.jolt>             Run a Jolt program")
	fmt.Println("  jolt repl [-config FILE]         Start interactive REPL")
	fmt.Println("  jolt serve [-addr ADDR]          Serve REPL sessions over WebSocket")
	fmt.Println("  jolt history [-n N] [-session ID] List recorded REPL input")
	fmt.Println("  jolt check <file.jolt>           Check syntax without running")
	fmt.Println("  jolt fmt [-w] <file.jolt>        Format Jolt code")
	fmt.Println("  jolt test [-v] [-json] [dir]     Run *.jolt programs against *.out files")
	fmt.Println("  jolt tokens <file.jolt>          Print the token stream")
	fmt.Println("  jolt parse <file.jolt>           Print the syntax tree")
	fmt.Println("  jolt version                     Show version information")
	fmt.Println()
	fmt.Println("Configuration is read from ./jolt.yaml or the file named by $JOLT_CONFIG.")
}

func showVersion() {
	fmt.Printf("Jolt v%s\n", VERSION)
	fmt.Printf("Build Date: %s\n", BuildDate)
	if GitCommit != "unknown" {
		fmt.Printf("Git Commit: %s\n", GitCommit)
	}
}

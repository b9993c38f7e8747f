// Package cmd implements the terra CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (render, tree, version).
package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "terra",
	Short: "Terra - retained-mode UI engine",
	Long: `Terra renders widget trees headlessly with the software display.

The demo counter app is used for rendering and inspection. Settings are
read from terra.yaml in the enclosing Go module, when present.

Use "terra <command> --help" for more information about a command.`,
	Usage: "terra <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	if isHelpFlag(args[0]) {
		printHelp(rootCmd)
		return nil
	}
	if args[0] == "-v" || args[0] == "--version" {
		printVersion()
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	if slices.ContainsFunc(cmdArgs, isHelpFlag) {
		printCommandHelp(cmd)
		return nil
	}
	return cmd.Run(cmdArgs)
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

func printVersion() {
	fmt.Printf("terra version %s (built %s)\n", Version, BuildTime)
}

func printHelp(cmd *Command) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n\nCommands:\n", cmd.Long, cmd.Usage)
	subs := slices.Clone(cmd.SubCommands)
	slices.SortFunc(subs, func(a, b *Command) int { return strings.Compare(a.Name, b.Name) })
	for _, sub := range subs {
		fmt.Fprintf(w, "  %s\t%s\n", sub.Name, sub.Short)
	}
	fmt.Fprint(w, "\nFlags:\n")
	fmt.Fprint(w, "  -h, --help\tShow help for a command\n")
	fmt.Fprint(w, "  -v, --version\tShow version information\n")
	fmt.Fprint(w, "\nExamples:\n")
	fmt.Fprint(w, "  terra render --out counter.png --tap 215,180\n")
	fmt.Fprint(w, "  terra tree\n")
}

func printCommandHelp(cmd *Command) {
	fmt.Printf("%s\n\nUsage:\n  %s\n", cmd.Long, cmd.Usage)
}

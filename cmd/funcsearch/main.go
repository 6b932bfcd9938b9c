package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/funcsearch/internal/app"
	"github.com/dshills/funcsearch/internal/storage"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "funcsearch"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := app.DefaultRunParams()

	searchRun := func(cmd *cobra.Command, args []string) error {
		return app.RunSearch(ctx, params, cmd.Flags(), firstArg(args))
	}

	rootCmd := &cobra.Command{
		Use:   programName + " [dir]",
		Short: "Search the functions of a Go codebase by text similarity",
		Long: "Scans a directory for Go functions and ranks them against free-text queries\n" +
			"using TF-IDF weighting and cosine similarity.",
		Version:      fmt.Sprintf("%s (build %s, sqlite %s/%s)", version, build, storage.BuildMode, storage.DriverName),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         searchRun,
	}
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	app.RegisterScanFlags(rootCmd.PersistentFlags())
	app.RegisterShellFlags(rootCmd.Flags())

	searchCmd := &cobra.Command{
		Use:   "search [dir]",
		Short: "Scan a directory and search it interactively (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  searchRun,
	}
	app.RegisterShellFlags(searchCmd.Flags())

	queryCmd := &cobra.Command{
		Use:   "query [dir] <text...>",
		Short: "Scan a directory and print the results of one query",
		Long: "Scans a directory and prints the results of one query.\n" +
			"The first argument is taken as the directory when it names one and more arguments follow.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, query := splitQueryArgs(args)
			return app.RunQuery(ctx, params, cmd.Flags(), dir, query)
		},
	}
	queryCmd.Flags().Bool("no-color", false, "Disable colored output")

	exportCmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Scan a directory and save its functions as a snapshot in a SQLite database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunExport(ctx, params, cmd.Flags(), firstArg(args))
		},
	}
	app.RegisterExportFlags(exportCmd.Flags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunServe(ctx, params, cmd.Flags(), version)
		},
	}
	app.RegisterServeFlags(serveCmd.Flags())

	rootCmd.AddCommand(searchCmd, queryCmd, exportCmd, serveCmd)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// firstArg returns the optional directory argument
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// splitQueryArgs separates an optional leading directory from the query words
func splitQueryArgs(args []string) (dir, query string) {
	if len(args) >= 2 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return args[0], strings.Join(args[1:], " ")
		}
	}
	return "", strings.Join(args, " ")
}

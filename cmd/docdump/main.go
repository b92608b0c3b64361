// Command docdump prints the content and internal structures of binary Word
// documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/config"
)

const appName = "docdump"

// env is the state shared by all commands, prepared after the command line
// has been parsed.
type env struct {
	profile *config.Profile
	log     *zap.Logger
}

var state env

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if state.profile, err = config.LoadProfile(cmd.String("profile")); err != nil {
		return ctx, fmt.Errorf("unable to prepare profile: %w", err)
	}
	if cmd.Bool("debug") {
		state.profile.Logging.ConsoleLogger.Level = "debug"
	}
	if state.log, err = state.profile.Logging.Prepare(appName); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	state.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	return ctx, nil
}

func destroyAppContext(_ context.Context, _ *cli.Command) error {
	if state.log != nil {
		state.log.Debug("Program ended")
		// syncing a console logger fails on some terminals
		_ = state.log.Sync()
	}
	return nil
}

func exitErrHandler(_ context.Context, _ *cli.Command, err error) {
	if state.log != nil {
		state.log.Error("Program ended with error", zap.Error(err))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "inspects binary Word (.doc) documents",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "load decoding profile from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log decoder diagnostics to the console"},
		},
		Commands: []*cli.Command{
			{
				Name:      "text",
				Usage:     "Prints the plain text of the document",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "track", Usage: "revision `MODE`: final, original or markup"},
					&cli.BoolFlag{Name: "no-notes", Usage: "leave footnotes and endnotes out"},
				},
				Action: runText,
			},
			{
				Name:      "markdown",
				Usage:     "Prints the document as markdown",
				ArgsUsage: "FILE",
				Action:    runMarkdown,
			},
			{
				Name:      "info",
				Usage:     "Prints a summary of the document and the recovered corruptions",
				ArgsUsage: "FILE",
				Action:    runInfo,
			},
			{
				Name:      "tables",
				Usage:     "Prints every table, nested ones included, as CSV",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "markdown", Aliases: []string{"m"}, Usage: "print markdown tables instead of CSV"},
				},
				Action: runTables,
			},
			{
				Name:      "fib",
				Usage:     "Prints the file information block",
				ArgsUsage: "FILE",
				Action:    runFib,
			},
			{
				Name:      "pieces",
				Usage:     "Prints the piece table",
				ArgsUsage: "FILE",
				Action:    runPieces,
			},
			{
				Name:      "styles",
				Usage:     "Prints the style sheet sorted by style id",
				ArgsUsage: "FILE",
				Action:    runStyles,
			},
			{
				Name:      "lists",
				Usage:     "Prints list definitions and overrides",
				ArgsUsage: "FILE",
				Action:    runLists,
			},
			{
				Name:      "bookmarks",
				Usage:     "Prints bookmarks with their character ranges",
				ArgsUsage: "FILE",
				Action:    runBookmarks,
			},
			{
				Name:      "images",
				Usage:     "Writes the pictures of the main text to a directory",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "destination `DIR`"},
				},
				Action: runImages,
			},
		},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

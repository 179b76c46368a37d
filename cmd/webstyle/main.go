// Command webstyle queries the style of HTML documents: computed values,
// matched rules and box values of the elements.
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
	"go.uber.org/zap/zapcore"

	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
)

// initializeLogging replaces the default logger (which writes to stdout)
// so that logs do not mix with the command output.
func initializeLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("quiet") {
		logger.SetLogger(nil)
		return ctx, nil
	}
	level := zapcore.WarnLevel
	if cmd.Bool("debug") {
		level = zapcore.DebugLevel
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = ""
	config.OutputPaths = []string{"stderr"}
	l, err := config.Build()
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	logger.SetLogger(l)
	logger.Root().Debug("Program started", zap.Strings("args", cmd.Args().Slice()), zap.String("runtime", runtime.Version()))
	return ctx, nil
}

func syncLogging(context.Context, *cli.Command) error {
	// stderr may not support sync
	_ = logger.Root().Sync()
	return nil
}

// flags store their parsed value, so each command needs its own instances
func selectFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		&cli.StringFlag{Name: "select", Aliases: []string{"s"}, Value: ":root", Usage: "select elements with `SELECTOR`"},
		&cli.BoolFlag{Name: "native", Usage: "evaluate --select with the style engine instead of goquery"},
	)
}

func pseudoFlag() cli.Flag {
	return &cli.StringFlag{Name: "pseudo", Usage: "query the `PSEUDO` element (like before) instead of the element"}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "webstyle",
		Usage:           "resolve the CSS of HTML documents",
		Version:         utils.VersionString + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeLogging,
		After:           syncLogging,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "medium", Aliases: []string{"m"}, Value: "screen", Usage: "target `MEDIUM` (screen, print or handheld by default)"},
			&cli.StringFlag{Name: "profiles", Usage: "load device profiles from `FILE` (YAML)"},
			&cli.StringSliceFlag{Name: "user-css", Usage: "add the user style sheet `FILE`"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log the progress of the style resolution"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "disable logs"},
		},
		Commands: []*cli.Command{
			{
				Name:      "computed",
				Usage:     "Prints the computed values of the selected elements",
				ArgsUsage: "SOURCE",
				Action:    runComputed,
				Flags: selectFlags(
					&cli.StringSliceFlag{Name: "property", Aliases: []string{"p"}, Value: []string{"display"}, Usage: "query `PROPERTY`"},
					pseudoFlag(),
				),
			},
			{
				Name:      "box",
				Usage:     "Prints the box values of the selected elements",
				ArgsUsage: "SOURCE",
				Action:    runBox,
				Flags: selectFlags(
					&cli.StringFlag{Name: "unit", Aliases: []string{"u"}, Value: "px", Usage: "absolute length `UNIT` of the output"},
				),
			},
			{
				Name:      "rules",
				Usage:     "Prints the rules matching the selected elements, the least important first",
				ArgsUsage: "SOURCE",
				Action:    runRules,
				Flags: selectFlags(
					&cli.BoolFlag{Name: "ua", Usage: "include the user agent rules"},
					pseudoFlag(),
				),
			},
			{
				Name:      "tree",
				Usage:     "Prints the element tree with some computed values",
				ArgsUsage: "SOURCE",
				Action:    runTree,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "property", Aliases: []string{"p"}, Usage: "show `PROPERTY`"},
					&cli.BoolFlag{Name: "all", Usage: "include elements with display: none"},
				},
			},
			{
				Name:      "selector",
				Usage:     "Prints the structure and the specificity of a selector list",
				ArgsUsage: "SELECTOR",
				Action:    runSelector,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

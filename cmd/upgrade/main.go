// upgrade lists and runs the upgrade steps of the intranet profiles
// against the configured stores.
//
//	upgrade --list
//	upgrade --profile lactec.intranet:default
//	upgrade --step reindexa-pessoa
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/app"
	"github.com/lactec/intranet/internal/config"
	"github.com/lactec/intranet/internal/observability"
	"github.com/lactec/intranet/internal/upgrades"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var profile, step string
	var list bool

	flagSet := pflag.NewFlagSet("upgrade", pflag.ContinueOnError)
	flagSet.StringVar(&profile, "profile", upgrades.DefaultProfile, "profile whose pending steps are run")
	flagSet.StringVar(&step, "step", "", "run a single step by id, leaving the profile version untouched")
	flagSet.BoolVar(&list, "list", false, "list registered steps and installed versions")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	intranet, err := app.New(cfg, logger, stores)
	if err != nil {
		return err
	}
	if err := intranet.Start(ctx); err != nil {
		return err
	}
	runner := intranet.Upgrades

	switch {
	case list:
		return printSteps(ctx, out, runner)
	case step != "":
		if err := runner.RunStep(ctx, step); err != nil {
			return err
		}
		fmt.Fprintf(out, "step %s done\n", step)
		return nil
	default:
		result, err := runner.Run(ctx, profile)
		if err != nil {
			return err
		}
		logger.Info("upgrade finished", zap.Strings("applied", result.Applied))
		fmt.Fprintf(out, "%s: %s -> %s (%d steps)\n", result.Profile, result.From, result.To, len(result.Applied))
		return nil
	}
}

func printSteps(ctx context.Context, out io.Writer, runner *upgrades.Runner) error {
	for _, profile := range runner.Registry().Profiles() {
		version, err := runner.CurrentVersion(ctx, profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (installed %s)\n", profile, version)
		for _, step := range runner.Registry().Steps(profile) {
			fmt.Fprintf(out, "  %-20s %s -> %s  %s\n", step.ID, step.Source, step.Destination, step.Title)
		}
	}
	return nil
}

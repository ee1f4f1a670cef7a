package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dbrx/app"
)

func newRunCmd() *cobra.Command {
	var (
		logLevel  string
		varDefs   []string
		noSubst   bool
		noEnvVars bool
		debugAddr string
	)

	cmd := &cobra.Command{
		Use:   "run [flags] CONFIG...",
		Short: "Apply one or more configuration files and run the resulting graph to completion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, level, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			vars, err := parseVars(varDefs)
			if err != nil {
				return err
			}
			config, err := loadConfigs(args, vars, !noSubst, !noEnvVars)
			if err != nil {
				return err
			}

			a, err := app.New(app.NullLoader{}, logger, level)
			if err != nil {
				return err
			}
			if err := a.ApplyConfig(config); err != nil {
				return err
			}

			if debugAddr != "" {
				startDebugServer(debugAddr, logger, a.GetConfig)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return a.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "logging level")
	cmd.Flags().StringArrayVarP(&varDefs, "var", "V", nil, "define a substitution variable as NAME=VALUE")
	cmd.Flags().BoolVarP(&noSubst, "no-subst", "s", false, "disable variable substitution in configuration")
	cmd.Flags().BoolVarP(&noEnvVars, "no-env", "e", false, "do not use environment variables in configuration")
	cmd.Flags().StringVar(&debugAddr, "debug-addr", "", "if set, serve /config and /metrics on this address")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dbrx/dbrxerr"
	"dbrx/propval"
)

func newGetConfigCmd() *cobra.Command {
	var (
		logLevel  string
		format    string
		varDefs   []string
		noSubst   bool
		noEnvVars bool
	)

	cmd := &cobra.Command{
		Use:   "get-config [flags] CONFIG...",
		Short: "Merge, substitute and print one or more configuration files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _, err := newLogger(logLevel)
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

			switch format {
			case "", "json":
				data, err := config.ToJSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case "text":
				fmt.Println(config.Sprint())
			default:
				return dbrxerr.Configurationf("unsupported output format %q", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "logging level")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, text)")
	cmd.Flags().StringArrayVarP(&varDefs, "var", "V", nil, "define a substitution variable as NAME=VALUE")
	cmd.Flags().BoolVarP(&noSubst, "no-subst", "s", false, "disable variable substitution in configuration")
	cmd.Flags().BoolVarP(&noEnvVars, "no-env", "e", false, "do not use environment variables in configuration")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	i18n "github.com/wecelebrate/go-i18n"
)

type app struct {
	configPath string
	envFiles   []string

	settings *i18n.Settings
	config   *i18n.Config
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "wecelebrate-i18n",
		Short:         "Format prices, numbers and units and inspect site configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "settings file (yaml, json or toml)")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files loaded before reading the environment (default .env)")

	root.AddCommand(
		newFormatCmd(a),
		newConvertCmd(a),
		newUnitsCmd(a),
		newSiteCmd(a),
	)
	return root
}

func (a *app) load() error {
	settings, err := i18n.LoadSettings(a.configPath, a.envFiles...)
	if err != nil {
		return err
	}

	logger, err := i18n.NewLogger(settings.LoggerConfig())
	if err != nil {
		return err
	}

	cfg, err := i18n.NewConfig(append(settings.Options(), i18n.WithLogger(logger))...)
	if err != nil {
		return err
	}

	a.settings = settings
	a.logger = logger
	a.config = cfg
	return nil
}

// Package cfg wires the command line, configuration sources and program components together.
package cfg

import (
	"context"
	"strings"
	cfgfiles "vidgrab/internal/cfg/files"
	cfgflags "vidgrab/internal/cfg/flags"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/domain/paths"
	"vidgrab/internal/utils/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the vidgrab command tree. Running it without a sub-command serves the web UI.
func NewRootCommand(ctx context.Context) (*cobra.Command, error) {
	serve := newServeCmd(ctx)

	rootCmd := &cobra.Command{
		Use:           consts.ProgramName,
		Short:         "vidgrab resolves and downloads videos from supported platforms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRuntime(cmd)
		},
		RunE: serve.RunE,
	}

	if err := cfgflags.InitProgramFlags(rootCmd); err != nil {
		return nil, err
	}
	if err := cfgflags.InitServerFlags(rootCmd); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(serve, newFormatsCmd(ctx), newDownloadCmd(ctx), newPlatformsCmd())
	return rootCmd, nil
}

// Execute builds and runs the command tree.
func Execute(ctx context.Context) error {
	initViper()
	rootCmd, err := NewRootCommand(ctx)
	if err != nil {
		return err
	}
	return rootCmd.ExecuteContext(ctx)
}

// initViper enables environment overrides such as VIDGRAB_DOWNLOAD_DIR.
func initViper() {
	viper.SetEnvPrefix(keys.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// initRuntime loads the config file and sets up logging before any command runs.
func initRuntime(cmd *cobra.Command) error {
	file := viper.GetString(keys.ConfigFile)
	if file == "" {
		if dir, err := paths.HomeDir(); err == nil {
			file = paths.DefaultConfigFile(dir)
		}
	}
	if file != "" {
		if err := cfgfiles.LoadConfigFile(file); err != nil {
			return err
		}
	}

	pl, err := logging.SetupLogging(logging.LoggingConfig{
		LogFilePath: viper.GetString(keys.LogFile),
		Console:     cmd.ErrOrStderr(),
		Program:     consts.ProgramName,
		DebugLevel:  viper.GetInt(keys.DebugLevel),
	})
	if err != nil {
		return err
	}
	logger.Pl = pl
	return nil
}

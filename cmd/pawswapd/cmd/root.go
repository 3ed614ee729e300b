package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app"
	"github.com/paw-chain/pawswap/x/pairs/client/cli"
)

const (
	FlagHome     = "home"
	FlagLogLevel = "log-level"

	configFileName = app.AppName + ".toml"
)

// NewRootCmd creates the root command of pawswapd. Flags fall back to
// PAWSWAP_* environment variables and then to <home>/config/pawswap.toml.
func NewRootCmd() *cobra.Command {
	app.SetConfig()

	v := viper.New()
	v.SetEnvPrefix(app.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "pawswapd",
		Short:        "PAWSWAP pair exchange tooling",
		Long:         `Offline tooling for the PAWSWAP pairs module: pair address derivation, swap quotes, TWAP windows and genesis files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			if err := cli.BindFlags(cmd.Root().PersistentFlags(), v); err != nil {
				return err
			}
			logger, err := newLogger(cmd, v)
			if err != nil {
				return err
			}
			return loadConfig(v, logger)
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, app.DefaultNodeHome, "directory for config")
	rootCmd.PersistentFlags().String(FlagLogLevel, zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(cli.GetCmd(v))

	return rootCmd
}

func newLogger(cmd *cobra.Command, v *viper.Viper) (log.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(FlagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FlagLogLevel, err)
	}
	return log.NewLogger(cmd.ErrOrStderr(), log.LevelOption(level)).With("module", "pawswapd"), nil
}

// loadConfig reads <home>/config/pawswap.toml into v. A missing file is not an error.
func loadConfig(v *viper.Viper, logger log.Logger) error {
	path := filepath.Join(v.GetString(FlagHome), "config", configFileName)
	v.SetConfigType("toml")
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			logger.Debug("no config file", "path", path)
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	logger.Debug("config loaded", "path", v.ConfigFileUsed())
	return nil
}

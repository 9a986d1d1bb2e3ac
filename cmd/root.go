// Package cmd wires the CLI: flags, config resolution, and logging.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slidecast/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "Turn text passages into narrated vertical videos",
	Long: `Slidecast renders each line of a text file as a styled slide, narrates
it through a speech service, and concatenates the slides into a single
vertical video with optional background music.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./slidecast.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slidecast")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.slidecast")
	}

	viper.SetEnvPrefix("SLIDECAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	initLogger()
	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	d := config.Default()
	viper.SetDefault("output", d.Output)
	viper.SetDefault("rate", d.Rate)
	viper.SetDefault("width", d.Width)
	viper.SetDefault("height", d.Height)
	viper.SetDefault("font-size", d.FontSize)
	viper.SetDefault("font-color", d.FontColor)
	viper.SetDefault("box-color", d.BoxColor)
	viper.SetDefault("box-alpha", d.BoxAlpha)
	viper.SetDefault("text-position", d.TextPosition)
	viper.SetDefault("style", d.Style)
	viper.SetDefault("shadow-color", d.ShadowColor)
	viper.SetDefault("shadow-offset-x", d.ShadowOffsetX)
	viper.SetDefault("shadow-offset-y", d.ShadowOffsetY)
	viper.SetDefault("logo-position", d.LogoPosition)
	viper.SetDefault("logo-opacity", d.LogoOpacity)
	viper.SetDefault("progress-color", d.ProgressColor)
	viper.SetDefault("progress-height", d.ProgressHeight)
	viper.SetDefault("narrator-url", d.NarratorURL)

	// Service mode
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("output-dir", "output")
	viper.SetDefault("kafka.group", "slidecast-workers")
	viper.SetDefault("kafka.topic", "render-jobs")
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)
}

func initLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// loadConfig unmarshals the viper state into a run configuration and
// resolves presets.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ResolveStyle()
	if err := cfg.ResolveCanvas(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

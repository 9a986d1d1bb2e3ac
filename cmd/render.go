package cmd

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slidecast/pipeline"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one video from a passage file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return pipeline.New(cfg, log.Logger).Run(ctx)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringP("input", "i", "", "text file, one passage per non-empty line (required)")
	f.StringP("output", "o", "", "output video path, or s3://bucket/key")
	f.String("font", "", "TTF/OTF font file (required)")
	f.String("voice", "", "narration voice name (required)")
	f.String("rate", "", "narration rate, e.g. +10%")
	f.String("background", "", "background image file or directory")
	f.String("music", "", "background music file")
	f.Int("width", 0, "canvas width")
	f.Int("height", 0, "canvas height")
	f.String("canvas", "", "canvas preset: reel | shorts | square")
	f.Int("font-size", 0, "font size in pixels")
	f.String("font-color", "", "text color, hex")
	f.String("box-color", "", "text box color, hex")
	f.Float64("box-alpha", 0, "text box opacity 0..1")
	f.String("text-position", "", "text anchor: top | center | bottom")
	f.String("style", "", "style preset: default | caption | subtitle")
	f.Bool("enable-shadow", false, "draw a text shadow")
	f.String("shadow-color", "", "shadow color, hex")
	f.Int("shadow-offset-x", 0, "shadow x offset in pixels")
	f.Int("shadow-offset-y", 0, "shadow y offset in pixels")
	f.String("logo", "", "logo image file")
	f.String("logo-position", "", "logo anchor, e.g. top-center")
	f.Float64("logo-opacity", 0, "logo opacity 0..1")
	f.Float64("min-duration", 0, "minimum seconds per slide")
	f.Bool("enable-progress-bar", false, "draw a progress bar")
	f.String("progress-color", "", "progress bar color, hex")
	f.Int("progress-height", 0, "progress bar height in pixels")
	f.String("narrator-url", "", "speech service endpoint")

	_ = viper.BindPFlags(f)
	rootCmd.AddCommand(renderCmd)
}

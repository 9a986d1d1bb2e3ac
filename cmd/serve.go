package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slidecast/api"
	"slidecast/jobs"
	"slidecast/queue"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the render service",
	Long: `Serve accepts render jobs over HTTP and, when brokers are configured,
from a Kafka topic. Finished videos land in the output directory unless the
job names an s3:// destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := loadConfig()
		if err != nil {
			return err
		}
		// Input and output are per-job in service mode.
		outputDir := viper.GetString("output-dir")
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return err
		}

		store, err := newStore()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if brokers := viper.GetStringSlice("kafka.brokers"); len(brokers) > 0 {
			consumer, err := queue.NewConsumer(queue.ConsumerConfig{
				Brokers: brokers,
				Topic:   viper.GetString("kafka.topic"),
				GroupID: viper.GetString("kafka.group"),
				Handler: queue.NewRenderHandler(*base, store, outputDir),
			})
			if err != nil {
				return err
			}
			if err := consumer.Start(ctx); err != nil {
				return err
			}
			defer consumer.Close()
		}

		server := api.NewServer(*base, store, outputDir)
		httpServer := &http.Server{
			Addr:    viper.GetString("listen"),
			Handler: server.Router(),
		}

		go func() {
			log.Info().Str("addr", httpServer.Addr).Msg("http server listening")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("http server failed")
				stop()
			}
		}()

		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

// newStore picks redis when an address is configured, otherwise process
// memory.
func newStore() (jobs.Store, error) {
	addr := viper.GetString("redis.addr")
	if addr == "" {
		return jobs.NewMemoryStore(), nil
	}
	return jobs.NewRedisStore(jobs.RedisConfig{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
		TTL:      24 * time.Hour,
	})
}

func init() {
	f := serveCmd.Flags()
	f.String("listen", "", "http listen address")
	f.String("output-dir", "", "directory for finished videos")
	f.StringSlice("kafka.brokers", nil, "kafka brokers; empty disables the consumer")
	f.String("kafka.topic", "", "kafka topic with render jobs")
	f.String("kafka.group", "", "kafka consumer group id")
	f.String("redis.addr", "", "redis address for the shared job store")

	_ = viper.BindPFlags(f)
	rootCmd.AddCommand(serveCmd)
}

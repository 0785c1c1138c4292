package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rmoralesp/jobfit/internal/logger"
	"github.com/rmoralesp/jobfit/internal/matcher"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the matching service readiness once",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()

		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		client := newClient(ctx, config, logger)

		status, err := client.GetStatus()
		if err != nil {
			logger.Fatal("probing model status", zap.Error(err))
		}

		fmt.Printf("model status: %s\n", status)

		if status != matcher.StatusReady {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

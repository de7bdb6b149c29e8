package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillgraph/skillgraph/pkg/config"
	"github.com/skillgraph/skillgraph/pkg/logger"
	"github.com/skillgraph/skillgraph/pkg/presenter"
)

var tracingShutdown func(context.Context) error

var rootCmd = &cobra.Command{
	Use:   "skillgraph",
	Short: "Explore the dependency graph between agent skills",
	Long: `skillgraph discovers SKILL.md files, builds the graph of references and
pipeline dependencies between them, and exports or explores it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.Configure(viper.GetString("log_level"), viper.GetString("log_format")); err != nil {
			return err
		}

		shutdown, err := initTracing(cmd.Context())
		if err != nil {
			logger.G(cmd.Context()).WithError(err).Warn("failed to initialise tracing, continuing without it")
			return nil
		}
		tracingShutdown = shutdown
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func init() {
	if err := config.Init(viper.GetViper()); err != nil {
		logger.L.WithError(err).Warn("ignoring unreadable configuration file")
	}

	rootCmd.PersistentFlags().String("log-level", config.Default().LogLevel, "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", config.Default().LogFormat, "Log format (fmt, json)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.AddCommand(withTracing(graphCmd))
	rootCmd.AddCommand(withTracing(listCmd))
	rootCmd.AddCommand(withTracing(overviewCmd))
	rootCmd.AddCommand(withTracing(tuiCmd))
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	err := rootCmd.ExecuteContext(ctx)

	if tracingShutdown != nil {
		if shutdownErr := tracingShutdown(context.Background()); shutdownErr != nil {
			logger.G(ctx).WithError(shutdownErr).Warn("failed to flush traces")
		}
	}

	if err != nil {
		presenter.Error(err, "Command failed")
		os.Exit(1)
	}
}

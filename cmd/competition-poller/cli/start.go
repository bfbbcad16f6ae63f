package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
)

func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Starts the scheduled competition poller",
		Args:  cobra.ExactArgs(0),
		RunE:  start,
	}

	return cmd
}

func start(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, cleanup, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	competitionPoller := service.StartCompetitionPoller(ctx)
	log.Info().
		Int("competition_id", cfg.Competition.ID).
		Dur("interval", cfg.Poller.Interval).
		Time("event_start", cfg.Poller.EventStartTime()).
		Msg("Competition poller started")

	<-ctx.Done()
	log.Info().Msg("Shutting down, waiting for the running cycle and background tasks")
	competitionPoller.Stop()
	competitionPoller.Wait()
	service.WaitBackground()
	return nil
}

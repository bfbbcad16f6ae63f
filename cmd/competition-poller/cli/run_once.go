package cli

import (
	"github.com/spf13/cobra"

	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
)

func RunOnceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-once",
		Short: "Runs a single poll cycle and exits, for external schedulers",
		Args:  cobra.ExactArgs(0),
		RunE:  runOnce,
	}

	return cmd
}

func runOnce(cmd *cobra.Command, args []string) error {
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

	// collectors only, a single invocation doesn't serve /metrics
	metrics.Register()

	err = service.RunOnce(ctx)
	service.WaitBackground()
	return err
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runebound-clan/competition-poller/internal/db"
	"github.com/runebound-clan/competition-poller/internal/types"
)

func LedgerGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ledger-get <player> <metric>",
		Short:   "Prints the last confirmed cumulative value of a player in a metric",
		Example: `competition-poller ledger-get "Iron Man" mining`,
		Args:    cobra.ExactArgs(2),
		RunE:    ledgerGet,
	}

	return cmd
}

func ledgerGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	player := args[0]
	metric, err := types.ParseTrackedMetric(args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return fmt.Errorf("error while creating db client: %w", err)
	}
	defer database.Disconnect(ctx) //nolint:errcheck

	key := types.LedgerKey(player, metric)
	record, err := database.GetLedgerRecord(ctx, key)
	if db.IsNotFoundError(err) {
		return fmt.Errorf("no ledger record for %q in %s (key %s)", player, metric, key)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}

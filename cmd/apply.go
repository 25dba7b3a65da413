package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/batch"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/presentation"
)

var applyStopOnError bool

var applyCmd = &cobra.Command{
	Use:   "apply FILE",
	Short: "Apply a YAML file of transactions in order",
	Long: `Apply a YAML file of transactions in order. Entries without a sender or
height use --sender and --height. With the replay-guard flag on, a repeated
id within the file is rejected instead of applied twice.

Example file:
  transactions:
    - id: tx-1
      op: create_listing
      sender: alice
      height: 0
      amount: 1000
      price: 500
      expiration: 100
    - id: tx-2
      op: purchase_bandwidth
      sender: bob
      height: 50
      target: 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, height := transaction(cmd)
		cmds, err := batch.Load(args[0], batch.Defaults{Sender: sender, Height: height})
		if err != nil {
			return err
		}

		f, err := formatter(cmd)
		if err != nil {
			return err
		}

		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			results := make([]presentation.BatchResult, 0, len(cmds))
			rejected := 0
			for _, c := range cmds {
				result, err := l.Apply(ctx, c)
				if err != nil {
					return err
				}
				entry := presentation.BatchResult{
					ID:      c.ID(),
					Op:      c.Type().String(),
					Success: result.Success,
				}
				if result.Success {
					entry.Value = result.Data
				} else {
					rejected++
					entry.Error = ledger.NewEnvelopeError(result.Error)
				}
				results = append(results, entry)
				if !result.Success && applyStopOnError {
					break
				}
			}

			log.Info(log.CatCLI, "transaction file applied", "file", args[0], "applied", len(results), "rejected", rejected)
			if err := f.RenderBatch(results); err != nil {
				return err
			}
			if rejected > 0 {
				return errRejected
			}
			return nil
		})
	},
}

func init() {
	applyCmd.Flags().BoolVar(&applyStopOnError, "stop-on-error", false, "stop at the first rejected transaction")
	rootCmd.AddCommand(applyCmd)
}

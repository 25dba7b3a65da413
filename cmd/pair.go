package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Generate, distribute and inspect entanglement pairs",
}

var pairGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a pair owned by the sender",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, height := transaction(cmd)
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			id, err := l.GeneratePair(ctx, sender, height)
			return respond(cmd, id, err)
		})
	},
}

var pairDistributeCmd = &cobra.Command{
	Use:   "distribute ID RECIPIENT",
	Short: "Hand a generated pair to a recipient",
	Long: `Hand a generated pair to a recipient. Only the generator may distribute,
and a pair is distributed at most once.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return respond(cmd, false, err)
		}
		sender, height := transaction(cmd)
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			ok, err := l.DistributePair(ctx, sender, height, id, domain.Sender(args[1]))
			return respond(cmd, ok, err)
		})
	},
}

var pairGetCmd = idCommand("get", "Show a pair",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		pair, err := l.GetPair(ctx, id)
		v, err := view(pair, err, ledger.NewPairView)
		return respond(cmd, v, err)
	})

func init() {
	pairCmd.AddCommand(pairGenerateCmd, pairDistributeCmd, pairGetCmd, countCommand(domain.RegistryPair))
	rootCmd.AddCommand(pairCmd)
}

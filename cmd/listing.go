package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

var listingCmd = &cobra.Command{
	Use:   "listing",
	Short: "Trade quantum bandwidth",
}

var (
	listingAmount     uint64
	listingPrice      uint64
	listingExpiration uint64
)

var listingCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Offer bandwidth for sale",
	Long: `Offer --amount units of bandwidth at --price until --expiration (exclusive).
Prints the new listing ID.

Examples:
  qnet listing create --sender alice --height 0 --amount 1000 --price 500 --expiration 100`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, height := transaction(cmd)
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			id, err := l.CreateListing(ctx, sender, height, listingAmount, listingPrice, domain.Height(listingExpiration))
			return respond(cmd, id, err)
		})
	},
}

var listingPurchaseCmd = idCommand("purchase", "Buy an active listing from another seller",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		sender, height := transaction(cmd)
		ok, err := l.PurchaseBandwidth(ctx, sender, height, id)
		return respond(cmd, ok, err)
	})

var listingGetCmd = idCommand("get", "Show a listing",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		listing, err := l.GetListing(ctx, id)
		v, err := view(listing, err, ledger.NewListingView)
		return respond(cmd, v, err)
	})

func init() {
	listingCreateCmd.Flags().Uint64Var(&listingAmount, "amount", 0, "bandwidth units offered")
	listingCreateCmd.Flags().Uint64Var(&listingPrice, "price", 0, "asking price")
	listingCreateCmd.Flags().Uint64Var(&listingExpiration, "expiration", 0, "height at which the offer lapses")
	_ = listingCreateCmd.MarkFlagRequired("amount")
	_ = listingCreateCmd.MarkFlagRequired("expiration")

	listingCmd.AddCommand(listingCreateCmd, listingPurchaseCmd, listingGetCmd, countCommand(domain.RegistryListing))
	rootCmd.AddCommand(listingCmd)
}

package cmd

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Register, revoke and inspect quantum keys",
}

var keyExpiration uint64

var keyRegisterCmd = &cobra.Command{
	Use:   "register PUBLIC_KEY_HEX",
	Short: "Register a 32-byte public key owned by the sender",
	Long: `Register a 32-byte public key owned by the sender. The key is valid until
--expiration (exclusive). Prints the new key ID.

Examples:
  qnet key register --sender alice --height 10 --expiration 1000 \
    4f2a...e1 (64 hex characters)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		publicKey, err := hex.DecodeString(args[0])
		if err != nil {
			return respond(cmd, domain.EntityID(0), domain.InvalidArgument(fmt.Sprintf("public key is not hex: %v", err)))
		}
		sender, height := transaction(cmd)
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			id, err := l.RegisterKey(ctx, sender, height, publicKey, domain.Height(keyExpiration))
			return respond(cmd, id, err)
		})
	},
}

var keyRevokeCmd = idCommand("revoke", "Revoke a key owned by the sender",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		sender, height := transaction(cmd)
		ok, err := l.RevokeKey(ctx, sender, height, id)
		return respond(cmd, ok, err)
	})

var keyGetCmd = idCommand("get", "Show a key",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		key, err := l.GetKey(ctx, id)
		v, err := view(key, err, ledger.NewKeyView)
		return respond(cmd, v, err)
	})

var keyValidCmd = idCommand("valid", "Report whether a key is unrevoked and unexpired at --height",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		_, height := transaction(cmd)
		valid, err := l.IsKeyValid(ctx, id, height)
		return respond(cmd, valid, err)
	})

func init() {
	keyRegisterCmd.Flags().Uint64Var(&keyExpiration, "expiration", 0, "height at which the key stops being valid")
	_ = keyRegisterCmd.MarkFlagRequired("expiration")

	keyCmd.AddCommand(keyRegisterCmd, keyRevokeCmd, keyGetCmd, keyValidCmd, countCommand(domain.RegistryKey))
	rootCmd.AddCommand(keyCmd)
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

var proposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "Submit, vote on and execute governance proposals",
}

var proposalDelay int64

var proposalSubmitCmd = &cobra.Command{
	Use:   "submit DESCRIPTION",
	Short: "Open a proposal",
	Long: `Open a proposal that becomes executable --delay ticks after --height.
Prints the new proposal ID.

Examples:
  qnet proposal submit --sender alice --height 0 --delay 1000 "raise relay fee"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, height := transaction(cmd)
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			id, err := l.SubmitProposal(ctx, sender, height, args[0], proposalDelay)
			return respond(cmd, id, err)
		})
	},
}

var proposalVoteCmd = &cobra.Command{
	Use:   "vote ID yes|no",
	Short: "Cast the sender's single vote on an active proposal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return respond(cmd, false, err)
		}
		support, err := parseSupport(args[1])
		if err != nil {
			return respond(cmd, false, err)
		}
		sender, height := transaction(cmd)
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			ok, err := l.VoteOnProposal(ctx, sender, height, id, support)
			return respond(cmd, ok, err)
		})
	},
}

var proposalExecuteCmd = idCommand("execute", "Fix the outcome of a proposal whose delay has elapsed",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		sender, height := transaction(cmd)
		outcome, err := l.ExecuteProposal(ctx, sender, height, id)
		return respond(cmd, outcome, err)
	})

var proposalGetCmd = idCommand("get", "Show a proposal",
	func(ctx context.Context, cmd *cobra.Command, l *ledger.Ledger, id domain.EntityID) error {
		proposal, err := l.GetProposal(ctx, id)
		v, err := view(proposal, err, ledger.NewProposalView)
		return respond(cmd, v, err)
	})

var proposalVotedCmd = &cobra.Command{
	Use:   "voted ID VOTER",
	Short: "Report whether VOTER has voted on a proposal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return respond(cmd, false, err)
		}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			voted, err := l.HasVoted(ctx, id, domain.Sender(args[1]))
			return respond(cmd, voted, err)
		})
	},
}

func parseSupport(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "yes", "for", "true":
		return true, nil
	case "no", "against", "false":
		return false, nil
	default:
		return false, domain.InvalidArgument(fmt.Sprintf("vote must be yes or no, got %q", arg))
	}
}

func init() {
	proposalSubmitCmd.Flags().Int64Var(&proposalDelay, "delay", 0, "ticks between submission and earliest execution")

	proposalCmd.AddCommand(proposalSubmitCmd, proposalVoteCmd, proposalExecuteCmd, proposalGetCmd, proposalVotedCmd,
		countCommand(domain.RegistryProposal))
	rootCmd.AddCommand(proposalCmd)
}

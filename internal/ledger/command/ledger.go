package command

import (
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// ===========================================================================
// Key Registry Commands
// ===========================================================================

// RegisterKeyCommand registers a public key owned by the sender.
type RegisterKeyCommand struct {
	*BaseCommand
	PublicKey  []byte
	Expiration domain.Height
}

// NewRegisterKeyCommand creates a new RegisterKeyCommand.
func NewRegisterKeyCommand(source CommandSource, sender domain.Sender, height domain.Height, publicKey []byte, expiration domain.Height) *RegisterKeyCommand {
	base := NewBaseCommand(CmdRegisterKey, source, sender, height)
	return &RegisterKeyCommand{BaseCommand: &base, PublicKey: publicKey, Expiration: expiration}
}

// Validate checks the sender and the key length.
func (c *RegisterKeyCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	if len(c.PublicKey) != domain.PublicKeySize {
		return domain.InvalidArgument(fmt.Sprintf("public key must be %d bytes, got %d", domain.PublicKeySize, len(c.PublicKey)))
	}
	return nil
}

func (c *RegisterKeyCommand) String() string {
	return fmt.Sprintf("RegisterKey{sender=%s, expiration=%d}", c.Sender(), c.Expiration)
}

// RevokeKeyCommand revokes a key. Only the owner may revoke.
type RevokeKeyCommand struct {
	*BaseCommand
	KeyID domain.EntityID
}

// NewRevokeKeyCommand creates a new RevokeKeyCommand.
func NewRevokeKeyCommand(source CommandSource, sender domain.Sender, height domain.Height, keyID domain.EntityID) *RevokeKeyCommand {
	base := NewBaseCommand(CmdRevokeKey, source, sender, height)
	return &RevokeKeyCommand{BaseCommand: &base, KeyID: keyID}
}

func (c *RevokeKeyCommand) String() string {
	return fmt.Sprintf("RevokeKey{key=%s, sender=%s}", c.KeyID, c.Sender())
}

// ===========================================================================
// Entanglement Pair Commands
// ===========================================================================

// GeneratePairCommand generates a pair owned by the sender.
type GeneratePairCommand struct {
	*BaseCommand
}

// NewGeneratePairCommand creates a new GeneratePairCommand.
func NewGeneratePairCommand(source CommandSource, sender domain.Sender, height domain.Height) *GeneratePairCommand {
	base := NewBaseCommand(CmdGeneratePair, source, sender, height)
	return &GeneratePairCommand{BaseCommand: &base}
}

func (c *GeneratePairCommand) String() string {
	return fmt.Sprintf("GeneratePair{sender=%s}", c.Sender())
}

// DistributePairCommand hands a pair to Recipient. Only the generator may distribute.
type DistributePairCommand struct {
	*BaseCommand
	PairID    domain.EntityID
	Recipient domain.Sender
}

// NewDistributePairCommand creates a new DistributePairCommand.
func NewDistributePairCommand(source CommandSource, sender domain.Sender, height domain.Height, pairID domain.EntityID, recipient domain.Sender) *DistributePairCommand {
	base := NewBaseCommand(CmdDistributePair, source, sender, height)
	return &DistributePairCommand{BaseCommand: &base, PairID: pairID, Recipient: recipient}
}

// Validate checks the sender and that a recipient is named.
func (c *DistributePairCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	if c.Recipient.IsZero() {
		return domain.InvalidArgument("recipient is required")
	}
	return nil
}

func (c *DistributePairCommand) String() string {
	return fmt.Sprintf("DistributePair{pair=%s, recipient=%s}", c.PairID, c.Recipient)
}

// ===========================================================================
// Bandwidth Market Commands
// ===========================================================================

// CreateListingCommand lists Amount units of bandwidth at Price until Expiration.
type CreateListingCommand struct {
	*BaseCommand
	Amount     uint64
	Price      uint64
	Expiration domain.Height
}

// NewCreateListingCommand creates a new CreateListingCommand.
func NewCreateListingCommand(source CommandSource, sender domain.Sender, height domain.Height, amount, price uint64, expiration domain.Height) *CreateListingCommand {
	base := NewBaseCommand(CmdCreateListing, source, sender, height)
	return &CreateListingCommand{BaseCommand: &base, Amount: amount, Price: price, Expiration: expiration}
}

// Validate checks the sender and that the amount is positive.
func (c *CreateListingCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	if c.Amount == 0 {
		return domain.InvalidArgument("amount must be greater than zero")
	}
	return nil
}

func (c *CreateListingCommand) String() string {
	return fmt.Sprintf("CreateListing{amount=%d, price=%d, expiration=%d}", c.Amount, c.Price, c.Expiration)
}

// PurchaseBandwidthCommand buys the whole of an active listing.
type PurchaseBandwidthCommand struct {
	*BaseCommand
	ListingID domain.EntityID
}

// NewPurchaseBandwidthCommand creates a new PurchaseBandwidthCommand.
func NewPurchaseBandwidthCommand(source CommandSource, sender domain.Sender, height domain.Height, listingID domain.EntityID) *PurchaseBandwidthCommand {
	base := NewBaseCommand(CmdPurchaseBandwidth, source, sender, height)
	return &PurchaseBandwidthCommand{BaseCommand: &base, ListingID: listingID}
}

func (c *PurchaseBandwidthCommand) String() string {
	return fmt.Sprintf("PurchaseBandwidth{listing=%s, buyer=%s}", c.ListingID, c.Sender())
}

// ===========================================================================
// Governance Commands
// ===========================================================================

// SubmitProposalCommand opens a proposal that becomes executable after
// ExecutionDelay ticks.
type SubmitProposalCommand struct {
	*BaseCommand
	Description    string
	ExecutionDelay int64
}

// NewSubmitProposalCommand creates a new SubmitProposalCommand.
func NewSubmitProposalCommand(source CommandSource, sender domain.Sender, height domain.Height, description string, executionDelay int64) *SubmitProposalCommand {
	base := NewBaseCommand(CmdSubmitProposal, source, sender, height)
	return &SubmitProposalCommand{BaseCommand: &base, Description: description, ExecutionDelay: executionDelay}
}

// Validate checks the sender, the description and the delay sign.
func (c *SubmitProposalCommand) Validate() error {
	if err := c.BaseCommand.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateDescription(c.Description); err != nil {
		return err
	}
	if c.ExecutionDelay < 0 {
		return domain.InvalidArgument(fmt.Sprintf("execution delay must be non-negative, got %d", c.ExecutionDelay))
	}
	return nil
}

func (c *SubmitProposalCommand) String() string {
	return fmt.Sprintf("SubmitProposal{description=%q, delay=%d}", truncate(c.Description, 50), c.ExecutionDelay)
}

// VoteOnProposalCommand casts the sender's vote.
type VoteOnProposalCommand struct {
	*BaseCommand
	ProposalID domain.EntityID
	Support    bool
}

// NewVoteOnProposalCommand creates a new VoteOnProposalCommand.
func NewVoteOnProposalCommand(source CommandSource, sender domain.Sender, height domain.Height, proposalID domain.EntityID, support bool) *VoteOnProposalCommand {
	base := NewBaseCommand(CmdVoteOnProposal, source, sender, height)
	return &VoteOnProposalCommand{BaseCommand: &base, ProposalID: proposalID, Support: support}
}

func (c *VoteOnProposalCommand) String() string {
	return fmt.Sprintf("VoteOnProposal{proposal=%s, voter=%s, support=%t}", c.ProposalID, c.Sender(), c.Support)
}

// ExecuteProposalCommand fixes the outcome of a proposal. Any sender may execute.
type ExecuteProposalCommand struct {
	*BaseCommand
	ProposalID domain.EntityID
}

// NewExecuteProposalCommand creates a new ExecuteProposalCommand.
func NewExecuteProposalCommand(source CommandSource, sender domain.Sender, height domain.Height, proposalID domain.EntityID) *ExecuteProposalCommand {
	base := NewBaseCommand(CmdExecuteProposal, source, sender, height)
	return &ExecuteProposalCommand{BaseCommand: &base, ProposalID: proposalID}
}

func (c *ExecuteProposalCommand) String() string {
	return fmt.Sprintf("ExecuteProposal{proposal=%s, height=%d}", c.ProposalID, c.Height())
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// Package batch reads transaction files: YAML lists of ledger transactions that
// are applied in order. Each entry may carry its own ID; re-applying a file then
// trips the replay guard instead of repeating the transactions.
package batch

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// File is the root structure of a transaction file.
type File struct {
	Transactions []TxDef `yaml:"transactions"`
}

// TxDef defines a single transaction. Only the fields of its op are read.
type TxDef struct {
	ID     string  `yaml:"id"`     // Optional; a UUID is generated when empty
	Op     string  `yaml:"op"`     // Command type, e.g. "register_key"
	Sender string  `yaml:"sender"` // Falls back to the file default
	Height *uint64 `yaml:"height"` // Falls back to the file default

	// register_key
	PublicKey string `yaml:"public_key"` // hex, 32 bytes
	// register_key, create_listing
	Expiration uint64 `yaml:"expiration"`

	// revoke_key, distribute_pair, purchase_bandwidth, vote_on_proposal, execute_proposal
	Target uint64 `yaml:"target"`

	// distribute_pair
	Recipient string `yaml:"recipient"`

	// create_listing
	Amount uint64 `yaml:"amount"`
	Price  uint64 `yaml:"price"`

	// submit_proposal
	Description string `yaml:"description"`
	Delay       int64  `yaml:"delay"`

	// vote_on_proposal
	Support bool `yaml:"support"`
}

// Defaults fill in sender and height for entries that omit them.
type Defaults struct {
	Sender domain.Sender
	Height domain.Height
}

// Load reads and parses a transaction file.
func Load(path string, defaults Defaults) ([]command.Command, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cmds, err := Parse(content, defaults)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cmds, nil
}

// Parse converts file content into commands stamped with SourceBatch.
// It rejects the whole file if any entry names an unknown op or carries a
// malformed public key; argument checks beyond that are left to the ledger.
func Parse(content []byte, defaults Defaults) ([]command.Command, error) {
	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}
	if len(file.Transactions) == 0 {
		return nil, fmt.Errorf("no transactions found")
	}

	cmds := make([]command.Command, 0, len(file.Transactions))
	for i, def := range file.Transactions {
		cmd, err := buildCommand(def, defaults)
		if err != nil {
			return nil, fmt.Errorf("transaction %d (%s): %w", i, def.Op, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

type idSetter interface {
	SetID(string)
}

func buildCommand(def TxDef, defaults Defaults) (command.Command, error) {
	sender := defaults.Sender
	if def.Sender != "" {
		sender = domain.Sender(def.Sender)
	}
	height := defaults.Height
	if def.Height != nil {
		height = domain.Height(*def.Height)
	}
	target := domain.EntityID(def.Target)

	var cmd command.Command
	switch command.CommandType(def.Op) {
	case command.CmdRegisterKey:
		publicKey, err := hex.DecodeString(def.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("public_key: %w", err)
		}
		cmd = command.NewRegisterKeyCommand(command.SourceBatch, sender, height, publicKey, domain.Height(def.Expiration))
	case command.CmdRevokeKey:
		cmd = command.NewRevokeKeyCommand(command.SourceBatch, sender, height, target)
	case command.CmdGeneratePair:
		cmd = command.NewGeneratePairCommand(command.SourceBatch, sender, height)
	case command.CmdDistributePair:
		cmd = command.NewDistributePairCommand(command.SourceBatch, sender, height, target, domain.Sender(def.Recipient))
	case command.CmdCreateListing:
		cmd = command.NewCreateListingCommand(command.SourceBatch, sender, height, def.Amount, def.Price, domain.Height(def.Expiration))
	case command.CmdPurchaseBandwidth:
		cmd = command.NewPurchaseBandwidthCommand(command.SourceBatch, sender, height, target)
	case command.CmdSubmitProposal:
		cmd = command.NewSubmitProposalCommand(command.SourceBatch, sender, height, def.Description, def.Delay)
	case command.CmdVoteOnProposal:
		cmd = command.NewVoteOnProposalCommand(command.SourceBatch, sender, height, target, def.Support)
	case command.CmdExecuteProposal:
		cmd = command.NewExecuteProposalCommand(command.SourceBatch, sender, height, target)
	default:
		return nil, fmt.Errorf("unknown op %q", def.Op)
	}

	if def.ID != "" {
		cmd.(idSetter).SetID(def.ID)
	}
	return cmd, nil
}

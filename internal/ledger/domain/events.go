package domain

// Action names a successful state transition.
type Action string

const (
	ActionKeyRegistered     Action = "key_registered"
	ActionKeyRevoked        Action = "key_revoked"
	ActionPairGenerated     Action = "pair_generated"
	ActionPairDistributed   Action = "pair_distributed"
	ActionListingCreated    Action = "listing_created"
	ActionListingPurchased  Action = "listing_purchased"
	ActionProposalSubmitted Action = "proposal_submitted"
	ActionVoteCast          Action = "vote_cast"
	ActionProposalExecuted  Action = "proposal_executed"
)

// String returns the action name.
func (a Action) String() string {
	return string(a)
}

// RecordEvent is published after a transaction commits.
type RecordEvent struct {
	Registry Registry
	ID       EntityID
	Action   Action
	Sender   Sender
	Height   Height
	// Detail carries action-specific data: the recipient, the buyer, the vote
	// direction or the proposal outcome.
	Detail string
}

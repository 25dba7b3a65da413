package domain

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// ProposalStatus is the lifecycle state of a governance proposal.
type ProposalStatus string

const (
	// ProposalStatusActive accepts votes and waits for its execution delay.
	ProposalStatusActive ProposalStatus = "active"

	// ProposalStatusExecuted is terminal; the outcome has been fixed.
	ProposalStatusExecuted ProposalStatus = "executed"
)

// String returns the status name.
func (s ProposalStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is recognized.
func (s ProposalStatus) IsValid() bool {
	return s == ProposalStatusActive || s == ProposalStatusExecuted
}

// Outcome is the result fixed when a proposal executes.
type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomePassed   Outcome = "passed"
	OutcomeRejected Outcome = "rejected"
)

// String returns the outcome name.
func (o Outcome) String() string {
	return string(o)
}

// IsValid returns true if the outcome is recognized.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomePending, OutcomePassed, OutcomeRejected:
		return true
	default:
		return false
	}
}

// Proposal is a governance proposal moving through submit → vote → delay → execute.
//
// Voting is open while the proposal is Active. Execution is open to any sender once
// executionDelay ticks have passed since submission, and happens exactly once.
type Proposal struct {
	id             EntityID
	proposer       Sender
	description    string
	votesFor       uint64
	votesAgainst   uint64
	status         ProposalStatus
	outcome        Outcome
	executionDelay uint64
	submittedAt    Height
	executedAt     *Height
	voters         map[Sender]bool
}

// ValidateDescription rejects an empty description. Any other text is kept
// as given.
func ValidateDescription(description string) error {
	if description == "" {
		return InvalidArgument("description is required")
	}
	return nil
}

// NewProposal creates an unpersisted Active proposal submitted at now.
func NewProposal(proposer Sender, description string, executionDelay int64, now Height) (*Proposal, error) {
	if proposer.IsZero() {
		return nil, InvalidArgument("proposer is required")
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	if executionDelay < 0 {
		return nil, InvalidArgument(fmt.Sprintf("execution delay must be non-negative, got %d", executionDelay))
	}
	return &Proposal{
		proposer:       proposer,
		description:    description,
		status:         ProposalStatusActive,
		outcome:        OutcomePending,
		executionDelay: uint64(executionDelay),
		submittedAt:    now,
		voters:         make(map[Sender]bool),
	}, nil
}

// ReconstituteProposal rebuilds a proposal from stored data. voters maps each
// sender who voted to the direction of the vote.
func ReconstituteProposal(
	id EntityID,
	proposer Sender,
	description string,
	votesFor, votesAgainst uint64,
	status ProposalStatus,
	outcome Outcome,
	executionDelay uint64,
	submittedAt Height,
	executedAt *Height,
	voters map[Sender]bool,
) *Proposal {
	if voters == nil {
		voters = make(map[Sender]bool)
	}
	return &Proposal{
		id:             id,
		proposer:       proposer,
		description:    description,
		votesFor:       votesFor,
		votesAgainst:   votesAgainst,
		status:         status,
		outcome:        outcome,
		executionDelay: executionDelay,
		submittedAt:    submittedAt,
		executedAt:     executedAt,
		voters:         voters,
	}
}

func (p *Proposal) ID() EntityID           { return p.id }
func (p *Proposal) Proposer() Sender       { return p.proposer }
func (p *Proposal) Description() string    { return p.description }
func (p *Proposal) VotesFor() uint64       { return p.votesFor }
func (p *Proposal) VotesAgainst() uint64   { return p.votesAgainst }
func (p *Proposal) Status() ProposalStatus { return p.status }
func (p *Proposal) Outcome() Outcome       { return p.outcome }
func (p *Proposal) ExecutionDelay() uint64 { return p.executionDelay }
func (p *Proposal) SubmittedAt() Height    { return p.submittedAt }
func (p *Proposal) ExecutedAt() *Height    { return p.executedAt }

// HasVoted reports whether sender already cast a vote.
func (p *Proposal) HasVoted(sender Sender) bool {
	_, ok := p.voters[sender]
	return ok
}

// Voters returns a copy of the voter set with each vote direction.
func (p *Proposal) Voters() map[Sender]bool {
	return maps.Clone(p.voters)
}

// VoterList returns the senders who voted, sorted.
func (p *Proposal) VoterList() []Sender {
	return slices.Sorted(maps.Keys(p.voters))
}

// ReadyAt reports whether the execution delay has elapsed at now.
func (p *Proposal) ReadyAt(now Height) bool {
	return Elapsed(p.submittedAt, p.executionDelay, now)
}

// ExecutableAt is the first height at which Execute succeeds, saturating at
// the largest height.
func (p *Proposal) ExecutableAt() Height {
	if p.executionDelay > math.MaxUint64-uint64(p.submittedAt) {
		return Height(math.MaxUint64)
	}
	return p.submittedAt + Height(p.executionDelay)
}

// Vote records one vote from sender.
func (p *Proposal) Vote(sender Sender, support bool) error {
	if sender.IsZero() {
		return InvalidArgument("voter is required")
	}
	if p.status != ProposalStatusActive {
		return InvalidState(fmt.Sprintf("proposal %s", p.id), ErrProposalClosed)
	}
	if p.HasVoted(sender) {
		return AlreadyVoted(p.id, sender)
	}
	if support {
		p.votesFor++
	} else {
		p.votesAgainst++
	}
	p.voters[sender] = support
	return nil
}

// Execute fixes the outcome once the delay has elapsed. A strict majority of votes
// for passes the proposal; anything else, including a tie, rejects it. Either
// way the call succeeds and the proposal becomes Executed.
func (p *Proposal) Execute(now Height) (Outcome, error) {
	if p.status == ProposalStatusExecuted {
		return p.outcome, InvalidState(fmt.Sprintf("proposal %s", p.id), ErrAlreadyExecuted)
	}
	if !p.ReadyAt(now) {
		return OutcomePending, InvalidState(
			fmt.Sprintf("proposal %s executable at %d", p.id, p.ExecutableAt()),
			ErrNotReady,
		)
	}
	outcome := OutcomeRejected
	if p.votesFor > p.votesAgainst {
		outcome = OutcomePassed
	}
	p.status = ProposalStatusExecuted
	p.outcome = outcome
	p.executedAt = &now
	return outcome, nil
}

// SetID assigns the registry ID. Called by the persistence layer on insert.
func (p *Proposal) SetID(id EntityID) {
	p.id = id
}

// Clone returns a deep copy.
func (p *Proposal) Clone() *Proposal {
	c := *p
	c.voters = maps.Clone(p.voters)
	if c.voters == nil {
		c.voters = make(map[Sender]bool)
	}
	if p.executedAt != nil {
		e := *p.executedAt
		c.executedAt = &e
	}
	return &c
}

package testutil

// WithStandardLedger adds one record of every state:
//
//	keys:      1 valid (Alice, exp 1000), 2 revoked (Bob, at 5)
//	pairs:     1 generated (Alice), 2 distributed (Alice → Bob at 4)
//	listings:  1 active (Alice, exp 100), 2 sold (Bob → Carol at 50)
//	proposals: 1 active (Alice, delay 10, 2 for / 1 against),
//	           2 executed (Bob, delay 5, 1 for, executed at 5)
func (b *Builder) WithStandardLedger() *Builder {
	return b.
		WithKey(Alice).
		WithKey(Bob, RevokedAt(5)).
		WithPair(Alice, GeneratedAt(1)).
		WithPair(Alice, GeneratedAt(2), DistributedTo(Bob, 4)).
		WithListing(Alice).
		WithListing(Bob, SoldTo(Carol, 50)).
		WithProposal(Alice, Votes(2, 1)).
		WithProposal(Bob, Delay(5), Votes(1, 0), ExecutedAt(5))
}

// WithGovernanceScenario adds a proposal with delay 1000 submitted at 0 and
// carrying 10 supporting and 5 opposing votes.
func (b *Builder) WithGovernanceScenario() *Builder {
	return b.WithProposal(Alice, Description("raise relay fee"), Delay(1000), Votes(10, 5))
}

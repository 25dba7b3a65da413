package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/processor"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/repository"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/mocks"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/testutil"
)

const (
	alice = testutil.Alice
	bob   = testutil.Bob
	carol = testutil.Carol
)

var errDisk = errors.New("disk I/O error")

func publicKey() []byte {
	return testutil.PublicKey(0)
}

func requireRecordEvent(t *testing.T, result *command.CommandResult, action domain.Action, id domain.EntityID) domain.RecordEvent {
	t.Helper()
	require.Len(t, result.Events, 1)
	event, ok := result.Events[0].(domain.RecordEvent)
	require.True(t, ok, "expected RecordEvent, got %T", result.Events[0])
	require.Equal(t, action, event.Action)
	require.Equal(t, id, event.ID)
	return event
}

func requireRejected(t *testing.T, result *command.CommandResult, err error, kind domain.Kind) {
	t.Helper()
	require.NoError(t, err, "domain rejections are reported in the result")
	require.NotNil(t, result)
	require.False(t, result.Success)
	require.True(t, domain.IsKind(result.Error, kind), "expected %s, got %v", kind, result.Error)
	require.Empty(t, result.Events)
}

// ===========================================================================
// Key handlers
// ===========================================================================

func TestRegisterKeyHandler_AllocatesSequentialIDs(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	h := NewRegisterKeyHandler(repos.Keys)

	for want := domain.EntityID(1); want <= 3; want++ {
		result, err := h.Handle(context.Background(), command.NewRegisterKeyCommand(command.SourceAPI, alice, 10, publicKey(), 100))
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Equal(t, want, result.Data)

		event := requireRecordEvent(t, result, domain.ActionKeyRegistered, want)
		require.Equal(t, domain.RegistryKey, event.Registry)
		require.Equal(t, alice, event.Sender)
		require.Equal(t, domain.Height(10), event.Height)
	}

	count, err := repos.Keys.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(3), count)
}

func TestRevokeKeyHandler(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	_, err := NewRegisterKeyHandler(repos.Keys).Handle(context.Background(),
		command.NewRegisterKeyCommand(command.SourceAPI, alice, 1, publicKey(), 100))
	require.NoError(t, err)

	h := NewRevokeKeyHandler(repos.Keys)

	result, err := h.Handle(context.Background(), command.NewRevokeKeyCommand(command.SourceAPI, bob, 2, 1))
	requireRejected(t, result, err, domain.KindUnauthorized)

	result, err = h.Handle(context.Background(), command.NewRevokeKeyCommand(command.SourceAPI, alice, 2, 9))
	requireRejected(t, result, err, domain.KindNotFound)

	result, err = h.Handle(context.Background(), command.NewRevokeKeyCommand(command.SourceAPI, alice, 3, 1))
	require.NoError(t, err)
	require.True(t, result.Success)
	requireRecordEvent(t, result, domain.ActionKeyRevoked, 1)

	key, err := repos.Keys.Get(1)
	require.NoError(t, err)
	require.True(t, key.Revoked())
	require.False(t, key.IsValidAt(0))

	result, err = h.Handle(context.Background(), command.NewRevokeKeyCommand(command.SourceAPI, alice, 4, 1))
	requireRejected(t, result, err, domain.KindInvalidState)
	require.ErrorIs(t, result.Error, domain.ErrAlreadyRevoked)
}

func TestRevokeKeyHandler_RejectionDoesNotSave(t *testing.T) {
	keys := mocks.NewMockKeyRepository(t)
	stored, err := domain.NewQuantumKey(alice, publicKey(), 100)
	require.NoError(t, err)
	stored.SetID(1)
	keys.On("Get", domain.EntityID(1)).Return(stored, nil).Once()

	result, err := NewRevokeKeyHandler(keys).Handle(context.Background(),
		command.NewRevokeKeyCommand(command.SourceAPI, bob, 2, 1))
	requireRejected(t, result, err, domain.KindUnauthorized)
	keys.AssertNotCalled(t, "Save", mock.Anything)
}

func TestRegisterKeyHandler_SaveFailureIsError(t *testing.T) {
	keys := mocks.NewMockKeyRepository(t)
	keys.On("Save", mock.AnythingOfType("*domain.QuantumKey")).Return(errDisk).Once()

	result, err := NewRegisterKeyHandler(keys).Handle(context.Background(),
		command.NewRegisterKeyCommand(command.SourceAPI, alice, 1, publicKey(), 100))
	require.Nil(t, result)
	require.ErrorIs(t, err, errDisk)
}

// ===========================================================================
// Pair handlers
// ===========================================================================

func TestPairHandlers_Lifecycle(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	generate := NewGeneratePairHandler(repos.Pairs)
	distribute := NewDistributePairHandler(repos.Pairs)

	result, err := generate.Handle(context.Background(), command.NewGeneratePairCommand(command.SourceAPI, alice, 5))
	require.NoError(t, err)
	require.Equal(t, domain.EntityID(1), result.Data)
	requireRecordEvent(t, result, domain.ActionPairGenerated, 1)

	result, err = distribute.Handle(context.Background(), command.NewDistributePairCommand(command.SourceAPI, bob, 6, 1, bob))
	requireRejected(t, result, err, domain.KindUnauthorized)

	result, err = distribute.Handle(context.Background(), command.NewDistributePairCommand(command.SourceAPI, alice, 7, 1, bob))
	require.NoError(t, err)
	require.True(t, result.Success)
	event := requireRecordEvent(t, result, domain.ActionPairDistributed, 1)
	require.Equal(t, bob.String(), event.Detail)

	pair, err := repos.Pairs.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.PairStatusDistributed, pair.Status())
	require.Equal(t, bob, *pair.Recipient())
	require.Equal(t, domain.Height(7), *pair.Timestamp())

	result, err = distribute.Handle(context.Background(), command.NewDistributePairCommand(command.SourceAPI, alice, 8, 1, bob))
	requireRejected(t, result, err, domain.KindInvalidState)

	result, err = distribute.Handle(context.Background(), command.NewDistributePairCommand(command.SourceAPI, alice, 8, 2, bob))
	requireRejected(t, result, err, domain.KindNotFound)
}

func TestDistributePairHandler_GetFailureIsError(t *testing.T) {
	pairs := mocks.NewMockPairRepository(t)
	pairs.On("Get", domain.EntityID(1)).Return(nil, errDisk).Once()

	result, err := NewDistributePairHandler(pairs).Handle(context.Background(),
		command.NewDistributePairCommand(command.SourceAPI, alice, 1, 1, bob))
	require.Nil(t, result)
	require.ErrorIs(t, err, errDisk)
}

// ===========================================================================
// Listing handlers
// ===========================================================================

func TestListingHandlers_Scenario(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	create := NewCreateListingHandler(repos.Listings)
	purchase := NewPurchaseBandwidthHandler(repos.Listings)

	result, err := create.Handle(context.Background(), command.NewCreateListingCommand(command.SourceAPI, alice, 0, 1000, 500, 100))
	require.NoError(t, err)
	require.Equal(t, domain.EntityID(1), result.Data)

	result, err = purchase.Handle(context.Background(), command.NewPurchaseBandwidthCommand(command.SourceAPI, alice, 50, 1))
	requireRejected(t, result, err, domain.KindInvalidOperation)

	result, err = purchase.Handle(context.Background(), command.NewPurchaseBandwidthCommand(command.SourceAPI, bob, 50, 1))
	require.NoError(t, err)
	require.True(t, result.Success)
	event := requireRecordEvent(t, result, domain.ActionListingPurchased, 1)
	require.Equal(t, bob.String(), event.Detail)

	listing, err := repos.Listings.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.ListingStatusSold, listing.Status())

	result, err = purchase.Handle(context.Background(), command.NewPurchaseBandwidthCommand(command.SourceAPI, bob, 60, 1))
	requireRejected(t, result, err, domain.KindInvalidState)
}

func TestPurchaseBandwidthHandler_Expired(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	_, err := NewCreateListingHandler(repos.Listings).Handle(context.Background(),
		command.NewCreateListingCommand(command.SourceAPI, alice, 0, 10, 1, 100))
	require.NoError(t, err)

	result, err := NewPurchaseBandwidthHandler(repos.Listings).Handle(context.Background(),
		command.NewPurchaseBandwidthCommand(command.SourceAPI, bob, 100, 1))
	requireRejected(t, result, err, domain.KindExpired)

	listing, err := repos.Listings.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.ListingStatusActive, listing.Status())
}

func TestPurchaseBandwidthHandler_SaveFailureIsError(t *testing.T) {
	listings := mocks.NewMockListingRepository(t)
	stored, err := domain.NewBandwidthListing(alice, 10, 1, 100)
	require.NoError(t, err)
	stored.SetID(1)
	listings.On("Get", domain.EntityID(1)).Return(stored, nil).Once()
	listings.On("Save", stored).Return(errDisk).Once()

	result, err := NewPurchaseBandwidthHandler(listings).Handle(context.Background(),
		command.NewPurchaseBandwidthCommand(command.SourceAPI, bob, 1, 1))
	require.Nil(t, result)
	require.ErrorIs(t, err, errDisk)
}

// ===========================================================================
// Proposal handlers
// ===========================================================================

func TestProposalHandlers_GovernanceScenario(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	submit := NewSubmitProposalHandler(repos.Proposals)
	vote := NewVoteOnProposalHandler(repos.Proposals)
	execute := NewExecuteProposalHandler(repos.Proposals)

	result, err := submit.Handle(context.Background(), command.NewSubmitProposalCommand(command.SourceAPI, alice, 0, "raise fees", 1000))
	require.NoError(t, err)
	require.Equal(t, domain.EntityID(1), result.Data)

	for i := 0; i < 10; i++ {
		voter := domain.Sender("for-" + string(rune('a'+i)))
		result, err = vote.Handle(context.Background(), command.NewVoteOnProposalCommand(command.SourceAPI, voter, 1, 1, true))
		require.NoError(t, err)
		require.True(t, result.Success)
	}
	for i := 0; i < 5; i++ {
		voter := domain.Sender("against-" + string(rune('a'+i)))
		result, err = vote.Handle(context.Background(), command.NewVoteOnProposalCommand(command.SourceAPI, voter, 1, 1, false))
		require.NoError(t, err)
		require.True(t, result.Success)
	}

	result, err = vote.Handle(context.Background(), command.NewVoteOnProposalCommand(command.SourceAPI, "for-a", 2, 1, false))
	requireRejected(t, result, err, domain.KindAlreadyVoted)

	result, err = execute.Handle(context.Background(), command.NewExecuteProposalCommand(command.SourceAPI, bob, 999, 1))
	requireRejected(t, result, err, domain.KindInvalidState)
	require.ErrorIs(t, result.Error, domain.ErrNotReady)

	result, err = execute.Handle(context.Background(), command.NewExecuteProposalCommand(command.SourceAPI, bob, 1000, 1))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, domain.OutcomePassed, result.Data)
	event := requireRecordEvent(t, result, domain.ActionProposalExecuted, 1)
	require.Equal(t, domain.OutcomePassed.String(), event.Detail)

	result, err = execute.Handle(context.Background(), command.NewExecuteProposalCommand(command.SourceAPI, bob, 2000, 1))
	requireRejected(t, result, err, domain.KindInvalidState)
	require.ErrorIs(t, result.Error, domain.ErrAlreadyExecuted)

	proposal, err := repos.Proposals.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint64(10), proposal.VotesFor())
	require.Equal(t, uint64(5), proposal.VotesAgainst())
	require.Equal(t, domain.ProposalStatusExecuted, proposal.Status())
}

func TestVoteOnProposalHandler_VoteDetail(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	_, err := NewSubmitProposalHandler(repos.Proposals).Handle(context.Background(),
		command.NewSubmitProposalCommand(command.SourceAPI, alice, 0, "upgrade", 0))
	require.NoError(t, err)

	result, err := NewVoteOnProposalHandler(repos.Proposals).Handle(context.Background(),
		command.NewVoteOnProposalCommand(command.SourceAPI, bob, 1, 1, false))
	require.NoError(t, err)
	event := requireRecordEvent(t, result, domain.ActionVoteCast, 1)
	require.Equal(t, "false", event.Detail)
}

func TestExecuteProposalHandler_UnknownProposal(t *testing.T) {
	proposals := mocks.NewMockProposalRepository(t)
	proposals.On("Get", domain.EntityID(4)).Return(nil, domain.NotFound(domain.RegistryProposal, 4)).Once()

	result, err := NewExecuteProposalHandler(proposals).Handle(context.Background(),
		command.NewExecuteProposalCommand(command.SourceAPI, alice, 1, 4))
	requireRejected(t, result, err, domain.KindNotFound)
	require.Equal(t, 404, domain.StatusCode(result.Error))
}

// ===========================================================================
// Routing
// ===========================================================================

func TestHandlers_RejectMisroutedCommand(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	handlers := []processor.CommandHandler{
		NewRegisterKeyHandler(repos.Keys),
		NewRevokeKeyHandler(repos.Keys),
		NewDistributePairHandler(repos.Pairs),
		NewCreateListingHandler(repos.Listings),
		NewPurchaseBandwidthHandler(repos.Listings),
		NewSubmitProposalHandler(repos.Proposals),
		NewVoteOnProposalHandler(repos.Proposals),
		NewExecuteProposalHandler(repos.Proposals),
	}

	wrong := command.NewGeneratePairCommand(command.SourceAPI, alice, 1)
	for _, h := range handlers {
		result, err := h.Handle(context.Background(), wrong)
		require.Nil(t, result)
		require.ErrorIs(t, err, ErrUnexpectedCommand)
	}
}

func TestRegister_CoversEveryCommandType(t *testing.T) {
	p := processor.NewCommandProcessor()
	Register(p, repository.NewMemoryRepositories())

	for _, cmdType := range command.AllTypes() {
		require.True(t, p.HasHandler(cmdType), "no handler for %s", cmdType)
	}
}

// ===========================================================================
// Terminal states
// ===========================================================================

// TestHandlers_TerminalStatesRejectAndPersistNothing replays a transition on
// records that already went through it and checks the stored record is
// unchanged.
func TestHandlers_TerminalStatesRejectAndPersistNothing(t *testing.T) {
	tests := []struct {
		name     string
		handler  func(domain.Repositories) processor.CommandHandler
		cmd      command.Command
		kind     domain.Kind
		sentinel error
		load     func(domain.Repositories) (any, error)
	}{
		{
			name:     "revoke revoked key",
			handler:  func(r domain.Repositories) processor.CommandHandler { return NewRevokeKeyHandler(r.Keys) },
			cmd:      command.NewRevokeKeyCommand(command.SourceAPI, bob, 20, 2),
			kind:     domain.KindInvalidState,
			sentinel: domain.ErrAlreadyRevoked,
			load:     func(r domain.Repositories) (any, error) { return r.Keys.Get(2) },
		},
		{
			name:     "distribute distributed pair",
			handler:  func(r domain.Repositories) processor.CommandHandler { return NewDistributePairHandler(r.Pairs) },
			cmd:      command.NewDistributePairCommand(command.SourceAPI, alice, 20, 2, carol),
			kind:     domain.KindInvalidState,
			sentinel: domain.ErrAlreadyDistributed,
			load:     func(r domain.Repositories) (any, error) { return r.Pairs.Get(2) },
		},
		{
			name:     "purchase sold listing",
			handler:  func(r domain.Repositories) processor.CommandHandler { return NewPurchaseBandwidthHandler(r.Listings) },
			cmd:      command.NewPurchaseBandwidthCommand(command.SourceAPI, alice, 60, 2),
			kind:     domain.KindInvalidState,
			sentinel: domain.ErrAlreadySold,
			load:     func(r domain.Repositories) (any, error) { return r.Listings.Get(2) },
		},
		{
			name:     "vote on executed proposal",
			handler:  func(r domain.Repositories) processor.CommandHandler { return NewVoteOnProposalHandler(r.Proposals) },
			cmd:      command.NewVoteOnProposalCommand(command.SourceAPI, carol, 20, 2, false),
			kind:     domain.KindInvalidState,
			sentinel: domain.ErrProposalClosed,
			load:     func(r domain.Repositories) (any, error) { return r.Proposals.Get(2) },
		},
		{
			name:     "execute executed proposal",
			handler:  func(r domain.Repositories) processor.CommandHandler { return NewExecuteProposalHandler(r.Proposals) },
			cmd:      command.NewExecuteProposalCommand(command.SourceAPI, carol, 20, 2),
			kind:     domain.KindInvalidState,
			sentinel: domain.ErrAlreadyExecuted,
			load:     func(r domain.Repositories) (any, error) { return r.Proposals.Get(2) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := testutil.NewBuilder(t, repository.NewMemoryRepositories()).WithStandardLedger().Build()
			before, err := tt.load(repos)
			require.NoError(t, err)

			result, err := tt.handler(repos).Handle(context.Background(), tt.cmd)
			requireRejected(t, result, err, tt.kind)
			require.ErrorIs(t, result.Error, tt.sentinel)

			after, err := tt.load(repos)
			require.NoError(t, err)
			require.Equal(t, before, after)
		})
	}
}

func TestExecuteProposalHandler_SeededGovernance(t *testing.T) {
	repos := testutil.NewBuilder(t, repository.NewMemoryRepositories()).WithGovernanceScenario().Build()
	h := NewExecuteProposalHandler(repos.Proposals)

	result, err := h.Handle(context.Background(), command.NewExecuteProposalCommand(command.SourceAPI, carol, 999, 1))
	requireRejected(t, result, err, domain.KindInvalidState)
	require.ErrorIs(t, result.Error, domain.ErrNotReady)

	result, err = h.Handle(context.Background(), command.NewExecuteProposalCommand(command.SourceAPI, carol, 1000, 1))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, domain.OutcomePassed, result.Data)
	requireRecordEvent(t, result, domain.ActionProposalExecuted, 1)
}

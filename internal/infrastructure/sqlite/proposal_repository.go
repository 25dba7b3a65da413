package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

const proposalsTable = "proposals"

// proposalRepository implements domain.ProposalRepository using SQLite.
// A proposal row and its proposal_votes rows are always written in one
// transaction, so the tallies and the voter set never disagree.
type proposalRepository struct {
	db *sql.DB
}

func newProposalRepository(db *sql.DB) *proposalRepository {
	return &proposalRepository{db: db}
}

var _ domain.ProposalRepository = (*proposalRepository)(nil)

func (r *proposalRepository) Count() (uint64, error) {
	return maxID(r.db, proposalsTable)
}

// Get retrieves a proposal by ID together with its voter set.
func (r *proposalRepository) Get(id domain.EntityID) (*domain.Proposal, error) {
	var m ProposalModel
	err := r.db.QueryRow(
		`SELECT id, proposer, description, votes_for, votes_against, status, outcome,
		        execution_delay, submitted_at, executed_at
		 FROM proposals WHERE id = ?`,
		int64(id),
	).Scan(
		&m.ID, &m.Proposer, &m.Description, &m.VotesFor, &m.VotesAgainst, &m.Status, &m.Outcome,
		&m.ExecutionDelay, &m.SubmittedAt, &m.ExecutedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.RegistryProposal, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	voters, err := r.voters(m.ID)
	if err != nil {
		return nil, err
	}
	return m.toDomain(voters), nil
}

func (r *proposalRepository) voters(proposalID int64) (map[domain.Sender]bool, error) {
	rows, err := r.db.Query(`SELECT voter, support FROM proposal_votes WHERE proposal_id = ?`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	voters := make(map[domain.Sender]bool)
	for rows.Next() {
		var voter string
		var support bool
		if err := rows.Scan(&voter, &support); err != nil {
			return nil, fmt.Errorf("failed to scan vote row: %w", err)
		}
		voters[domain.Sender(voter)] = support
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote rows: %w", err)
	}
	return voters, nil
}

// Save inserts or updates the proposal and records any votes not yet stored.
// Votes are never removed.
func (r *proposalRepository) Save(proposal *domain.Proposal) error {
	m := toProposalModel(proposal)
	isNew := proposal.ID() == 0

	err := withTx(r.db, func(tx *sql.Tx) error {
		if isNew {
			last, err := maxID(tx, proposalsTable)
			if err != nil {
				return err
			}
			m.ID = int64(last + 1)
			_, err = tx.Exec(
				`INSERT INTO proposals (id, proposer, description, votes_for, votes_against, status, outcome,
				                        execution_delay, submitted_at, executed_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				m.ID, m.Proposer, m.Description, m.VotesFor, m.VotesAgainst, m.Status, m.Outcome,
				m.ExecutionDelay, m.SubmittedAt, m.ExecutedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert proposal: %w", err)
			}
		} else {
			result, err := tx.Exec(
				`UPDATE proposals SET votes_for = ?, votes_against = ?, status = ?, outcome = ?, executed_at = ?
				 WHERE id = ?`,
				m.VotesFor, m.VotesAgainst, m.Status, m.Outcome, m.ExecutedAt, m.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to update proposal: %w", err)
			}
			if err := checkUpdated(result, domain.NotFound(domain.RegistryProposal, proposal.ID())); err != nil {
				return err
			}
		}

		for voter, support := range proposal.Voters() {
			_, err := tx.Exec(
				`INSERT INTO proposal_votes (proposal_id, voter, support) VALUES (?, ?, ?)
				 ON CONFLICT (proposal_id, voter) DO NOTHING`,
				m.ID, voter.String(), support,
			)
			if err != nil {
				return fmt.Errorf("failed to record vote: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if isNew {
		proposal.SetID(domain.EntityID(m.ID))
	}
	return nil
}

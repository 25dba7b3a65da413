package domain

import "fmt"

// PairStatus is the lifecycle state of an entanglement pair.
type PairStatus string

const (
	// PairStatusGenerated is the initial state; the pair has no recipient yet.
	PairStatusGenerated PairStatus = "generated"

	// PairStatusDistributed is terminal; recipient and timestamp are set.
	PairStatusDistributed PairStatus = "distributed"
)

// String returns the status name.
func (s PairStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is recognized.
func (s PairStatus) IsValid() bool {
	return s == PairStatusGenerated || s == PairStatusDistributed
}

// EntanglementPair is a generated pair awaiting, or having completed, distribution.
type EntanglementPair struct {
	id          EntityID
	generator   Sender
	recipient   *Sender
	status      PairStatus
	generatedAt Height
	timestamp   *Height
}

// NewEntanglementPair creates an unpersisted pair in the Generated state.
func NewEntanglementPair(generator Sender, now Height) (*EntanglementPair, error) {
	if generator.IsZero() {
		return nil, InvalidArgument("generator is required")
	}
	return &EntanglementPair{
		generator:   generator,
		status:      PairStatusGenerated,
		generatedAt: now,
	}, nil
}

// ReconstituteEntanglementPair rebuilds a pair from stored data.
func ReconstituteEntanglementPair(id EntityID, generator Sender, recipient *Sender, status PairStatus, generatedAt Height, timestamp *Height) *EntanglementPair {
	return &EntanglementPair{
		id:          id,
		generator:   generator,
		recipient:   recipient,
		status:      status,
		generatedAt: generatedAt,
		timestamp:   timestamp,
	}
}

func (p *EntanglementPair) ID() EntityID        { return p.id }
func (p *EntanglementPair) Generator() Sender   { return p.generator }
func (p *EntanglementPair) Status() PairStatus  { return p.status }
func (p *EntanglementPair) GeneratedAt() Height { return p.generatedAt }

// Recipient returns the recipient, or nil before distribution.
func (p *EntanglementPair) Recipient() *Sender {
	return p.recipient
}

// Timestamp returns the distribution height, or nil before distribution.
func (p *EntanglementPair) Timestamp() *Height {
	return p.timestamp
}

// Distribute hands the pair to recipient. Only the generator may distribute and a
// pair is distributed exactly once.
func (p *EntanglementPair) Distribute(sender, recipient Sender, now Height) error {
	if recipient.IsZero() {
		return InvalidArgument("recipient is required")
	}
	if err := Authorize(p.generator, sender); err != nil {
		return err
	}
	if p.status != PairStatusGenerated {
		return InvalidState(fmt.Sprintf("pair %s", p.id), ErrAlreadyDistributed)
	}
	p.recipient = &recipient
	p.timestamp = &now
	p.status = PairStatusDistributed
	return nil
}

// SetID assigns the registry ID. Called by the persistence layer on insert.
func (p *EntanglementPair) SetID(id EntityID) {
	p.id = id
}

// Clone returns a deep copy.
func (p *EntanglementPair) Clone() *EntanglementPair {
	c := *p
	if p.recipient != nil {
		r := *p.recipient
		c.recipient = &r
	}
	if p.timestamp != nil {
		t := *p.timestamp
		c.timestamp = &t
	}
	return &c
}

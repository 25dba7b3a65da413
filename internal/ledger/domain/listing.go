package domain

import "fmt"

// ListingStatus is the lifecycle state of a bandwidth listing.
type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
)

// String returns the status name.
func (s ListingStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is recognized.
func (s ListingStatus) IsValid() bool {
	return s == ListingStatusActive || s == ListingStatusSold
}

// BandwidthListing offers an amount of quantum bandwidth at a price until expiration.
// A purchase takes the whole amount; there are no partial fills.
type BandwidthListing struct {
	id         EntityID
	seller     Sender
	amount     uint64
	price      uint64
	expiration Height
	status     ListingStatus
	buyer      *Sender
	soldAt     *Height
}

// NewBandwidthListing creates an unpersisted Active listing.
func NewBandwidthListing(seller Sender, amount, price uint64, expiration Height) (*BandwidthListing, error) {
	if seller.IsZero() {
		return nil, InvalidArgument("seller is required")
	}
	if amount == 0 {
		return nil, InvalidArgument("amount must be greater than zero")
	}
	return &BandwidthListing{
		seller:     seller,
		amount:     amount,
		price:      price,
		expiration: expiration,
		status:     ListingStatusActive,
	}, nil
}

// ReconstituteBandwidthListing rebuilds a listing from stored data.
func ReconstituteBandwidthListing(id EntityID, seller Sender, amount, price uint64, expiration Height, status ListingStatus, buyer *Sender, soldAt *Height) *BandwidthListing {
	return &BandwidthListing{
		id:         id,
		seller:     seller,
		amount:     amount,
		price:      price,
		expiration: expiration,
		status:     status,
		buyer:      buyer,
		soldAt:     soldAt,
	}
}

func (l *BandwidthListing) ID() EntityID          { return l.id }
func (l *BandwidthListing) Seller() Sender        { return l.seller }
func (l *BandwidthListing) Amount() uint64        { return l.amount }
func (l *BandwidthListing) Price() uint64         { return l.price }
func (l *BandwidthListing) Expiration() Height    { return l.expiration }
func (l *BandwidthListing) Status() ListingStatus { return l.status }
func (l *BandwidthListing) Buyer() *Sender        { return l.buyer }
func (l *BandwidthListing) SoldAt() *Height       { return l.soldAt }

// Purchase flips the listing to Sold for buyer.
//
// Checks run in order: expiration (regardless of status), then status, then the
// self-purchase guard.
func (l *BandwidthListing) Purchase(buyer Sender, now Height) error {
	if buyer.IsZero() {
		return InvalidArgument("buyer is required")
	}
	if !IsValid(l.expiration, false, now) {
		return Expired(fmt.Sprintf("listing %s expired at %d", l.id, l.expiration))
	}
	if l.status != ListingStatusActive {
		return InvalidState(fmt.Sprintf("listing %s", l.id), ErrAlreadySold)
	}
	if buyer == l.seller {
		return InvalidOperation(fmt.Sprintf("seller cannot purchase own listing %s", l.id))
	}
	l.status = ListingStatusSold
	l.buyer = &buyer
	l.soldAt = &now
	return nil
}

// SetID assigns the registry ID. Called by the persistence layer on insert.
func (l *BandwidthListing) SetID(id EntityID) {
	l.id = id
}

// Clone returns a deep copy.
func (l *BandwidthListing) Clone() *BandwidthListing {
	c := *l
	if l.buyer != nil {
		b := *l.buyer
		c.buyer = &b
	}
	if l.soldAt != nil {
		s := *l.soldAt
		c.soldAt = &s
	}
	return &c
}

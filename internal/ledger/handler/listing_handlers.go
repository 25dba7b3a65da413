package handler

import (
	"context"
	"fmt"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/command"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// CreateListingHandler handles CmdCreateListing. The result data is the new
// listing ID.
type CreateListingHandler struct {
	listings domain.ListingRepository
}

// NewCreateListingHandler creates a new CreateListingHandler.
func NewCreateListingHandler(listings domain.ListingRepository) *CreateListingHandler {
	return &CreateListingHandler{listings: listings}
}

// Handle processes a CreateListingCommand.
func (h *CreateListingHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	createCmd, err := as[*command.CreateListingCommand](cmd)
	if err != nil {
		return nil, err
	}

	listing, err := domain.NewBandwidthListing(createCmd.Sender(), createCmd.Amount, createCmd.Price, createCmd.Expiration)
	if err != nil {
		return reject(err)
	}
	if err := h.listings.Save(listing); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	return committed(cmd, domain.RegistryListing, listing.ID(), domain.ActionListingCreated, "", listing.ID()), nil
}

// PurchaseBandwidthHandler handles CmdPurchaseBandwidth.
type PurchaseBandwidthHandler struct {
	listings domain.ListingRepository
}

// NewPurchaseBandwidthHandler creates a new PurchaseBandwidthHandler.
func NewPurchaseBandwidthHandler(listings domain.ListingRepository) *PurchaseBandwidthHandler {
	return &PurchaseBandwidthHandler{listings: listings}
}

// Handle processes a PurchaseBandwidthCommand.
func (h *PurchaseBandwidthHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	purchaseCmd, err := as[*command.PurchaseBandwidthCommand](cmd)
	if err != nil {
		return nil, err
	}

	listing, err := h.listings.Get(purchaseCmd.ListingID)
	if err != nil {
		return reject(err)
	}
	if err := listing.Purchase(purchaseCmd.Sender(), purchaseCmd.Height()); err != nil {
		return reject(err)
	}
	if err := h.listings.Save(listing); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	return committed(cmd, domain.RegistryListing, listing.ID(), domain.ActionListingPurchased, purchaseCmd.Sender().String(), true), nil
}

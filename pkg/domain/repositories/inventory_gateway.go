package repositories

import (
	"context"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

// InventoryGateway is the narrow interface to the remote inventory system.
// All calls are blocking request/response operations; implementations retry
// transient failures with bounded backoff before giving up.
type InventoryGateway interface {
	// ListParts returns every part record with its stock levels
	ListParts(ctx context.Context) ([]entities.InventoryRecord, error)

	// SetDefaultLocation records a slot as the default location for the
	// part matching the identity
	SetDefaultLocation(ctx context.Context, identity entities.Identity, slot entities.StorageSlot) error

	// MoveStock moves on-hand stock of the identity into the slot. A zero
	// quantity moves all of it.
	MoveStock(ctx context.Context, identity entities.Identity, slot entities.StorageSlot, quantity entities.Quantity) error
}

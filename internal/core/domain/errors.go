// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Checkout error taxonomy. InvalidItemID, ItemNotFound, ItemSoldOut and
// EmptyCart are expected business outcomes and are surfaced to the caller
// verbatim; storage and ledger failures are operational and reach the
// caller only as a generic failure.
var (
	// ErrInvalidItemID means a requested item id failed to parse. Raised
	// before any reservation is attempted; nothing is committed.
	ErrInvalidItemID = errors.New("invalid item id")

	// ErrItemNotFound means an id was absent from the item index. A hard
	// checkout-aborting error, never a skip.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemSoldOut means no lot had an available code at allocation time.
	ErrItemSoldOut = errors.New("item sold out")

	// ErrEmptyCart means a cart checkout was requested with nothing saved.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownStore means an employee checkout named a store that does
	// not exist.
	ErrUnknownStore = errors.New("unknown store")

	// ErrCodeTaken is the internal lost-race signal: the unit's code was
	// pulled by a concurrent reservation between allocation and commit.
	// It must never escape the checkout service; the orchestrator either
	// retries allocation with a fresh candidate or downgrades the item to
	// ErrItemSoldOut.
	ErrCodeTaken = errors.New("unit code already taken")

	// ErrLedgerWrite means a store's sale entry could not be appended after
	// the reservations had committed.
	ErrLedgerWrite = errors.New("ledger write failed")
)

// ReservationConflict reports which unit lost its reservation race so the
// orchestrator can re-enter allocation for that item only.
type ReservationConflict struct {
	Unit ReservedUnit
}

func (e *ReservationConflict) Error() string {
	return fmt.Sprintf("code %s no longer present in lot %s of item %s",
		e.Unit.Code, e.Unit.LotID, e.Unit.ItemID)
}

// Unwrap makes errors.Is(err, ErrCodeTaken) hold for conflicts.
func (e *ReservationConflict) Unwrap() error { return ErrCodeTaken }

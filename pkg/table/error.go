package table

import "errors"

// ErrInvalidSlot is returned when a slot index is outside of the table
var ErrInvalidSlot = errors.New("slot is not on the table")

// ErrSlotOccupied is returned when a card is placed on a slot that already holds one
var ErrSlotOccupied = errors.New("slot already has a card")

// ErrSlotEmpty is returned when a card is removed from an empty slot
var ErrSlotEmpty = errors.New("slot has no card")

// ErrCardOnTable is returned when a card that is already on the table is placed again
var ErrCardOnTable = errors.New("card is already on the table")

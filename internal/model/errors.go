package model

import (
	"errors"
	"fmt"
)

var ErrNoRecord = errors.New("no record")
var ErrValidation = errors.New("validation failed")
var ErrForbidden = errors.New("forbidden")

// ErrStorage marks failures of the durable event store. An operation that
// returns it did not commit its mutation.
var ErrStorage = errors.New("storage unavailable")

// ErrDelivery marks failures of the messaging platform. Data mutations made
// before the delivery attempt stay committed.
var ErrDelivery = errors.New("delivery failed")

// ErrMessageNotFound is returned when an edit or fetch targets a message that
// was removed from the channel.
var ErrMessageNotFound = fmt.Errorf("%w: message not found", ErrDelivery)

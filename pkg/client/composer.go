package client

import (
	"context"
	"errors"

	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled by user")

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool { return f(ctx, message) }

type SubmitResult struct {
	TripID      int64
	DaysCreated int
}

// TripComposer submits the trip form. It validates locally first and never
// reaches the server with an invalid form.
type TripComposer struct {
	c      *Client
	userID int64
}

func NewTripComposer(c *Client, userID int64) *TripComposer {
	return &TripComposer{c: c, userID: userID}
}

// Submit creates the trip when tripID is zero and updates it otherwise. A
// *transfer.FieldError is returned for an invalid form.
func (t *TripComposer) Submit(ctx context.Context, tripID int64, in transfer.TripInput) (*SubmitResult, error) {
	if _, _, fe := in.Validate(); fe != nil {
		return nil, fe
	}

	if tripID != 0 {
		if err := t.c.UpdateTrip(ctx, tripID, &in); err != nil {
			return nil, err
		}
		return &SubmitResult{TripID: tripID}, nil
	}

	in.UserID = t.userID
	resp, err := t.c.CreateTrip(ctx, &in)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{TripID: resp.TripID, DaysCreated: resp.DaysCreated}, nil
}

package client

import (
	"context"
	"errors"
)

// VerifyState is the verification panel's status flag.
type VerifyState string

const (
	StateIdle    VerifyState = "idle"
	StateLoading VerifyState = "loading"
	StateSuccess VerifyState = "success"
	StateError   VerifyState = "error"
)

// Verifier drives the verify flow: idle -> loading -> (success | error),
// resetting to loading on every new attempt. A scanned code and a manually
// typed identifier feed the same path. The last-fetched record or error
// message is held for display; stale data never survives into an error state.
type Verifier struct {
	api *Client

	State       VerifyState
	Participant *Participant
	ErrMsg      string
}

func NewVerifier(api *Client) *Verifier {
	return &Verifier{api: api, State: StateIdle}
}

// Verify looks up id and transitions the state machine. The returned error
// mirrors ErrMsg for callers that prefer error handling over state checks.
func (v *Verifier) Verify(ctx context.Context, id string) error {
	v.State = StateLoading
	v.Participant = nil
	v.ErrMsg = ""

	p, err := v.api.Participant(ctx, id)
	if err != nil {
		v.State = StateError
		v.ErrMsg = errMessage(err)
		return err
	}

	v.State = StateSuccess
	v.Participant = p
	return nil
}

// CheckIn confirms the currently verified participant and refreshes the held
// record so a re-display shows the updated "Printed" status.
func (v *Verifier) CheckIn(ctx context.Context) (*CheckInResult, error) {
	if v.State != StateSuccess || v.Participant == nil {
		return nil, errors.New("no verified participant to check in")
	}

	result, err := v.api.CheckIn(ctx, v.Participant.ID)
	if err != nil {
		v.State = StateError
		v.Participant = nil
		v.ErrMsg = "Failed to update check-in status. Please try again."
		return nil, err
	}

	if refreshed, err := v.api.Participant(ctx, v.Participant.ID); err == nil {
		v.Participant = refreshed
	}
	return result, nil
}

// Reset returns the verifier to idle.
func (v *Verifier) Reset() {
	v.State = StateIdle
	v.Participant = nil
	v.ErrMsg = ""
}

func errMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Participant not found."
	case errors.Is(err, ErrForbidden):
		return "Session expired, please log in again."
	default:
		return err.Error()
	}
}

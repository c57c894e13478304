package utils

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDatabaseError   = errors.New("database error")
	ErrTripNotFound    = errors.New("trip not found")
	ErrInvalidTripDate = errors.New("trip end date is before start date")

	ErrActivityNotFound = errors.New("activity not found")
	ErrUnknownChange    = errors.New("unknown change action")

	ErrEditRequestNotFound    = errors.New("edit request not found")
	ErrRequestAlreadyResolved = errors.New("edit request already resolved")
	ErrNotTripOwner           = errors.New("only the trip owner can do this")
	ErrOwnerCannotRequest     = errors.New("trip owner does not need to request edits")
	ErrNotTripMember          = errors.New("user is not a member of this trip")
	ErrNotTripEditor          = errors.New("user cannot edit this trip directly")

	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from AI backend")
	ErrSessionKeyRequired     = errors.New("trip_id or session_id is required")
)

package request_models

// AssistantMessageRequest is one user turn in the assistant dialog. TripID
// selects the "current trip" context; without it the turn belongs to the
// chat session named by SessionID (a new one is generated when empty).
type AssistantMessageRequest struct {
	Message   string `json:"message" binding:"required"`
	TripID    string `json:"trip_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type SetLastTripRequest struct {
	TripID string `json:"trip_id" binding:"required,uuid"`
}

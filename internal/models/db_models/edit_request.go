package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EditRequestStatus string

const (
	EditRequestPending  EditRequestStatus = "pending"
	EditRequestApproved EditRequestStatus = "approved"
	EditRequestRejected EditRequestStatus = "rejected"
)

type EditRequestKind string

const (
	EditKindActivity   EditRequestKind = "activity_edit"
	EditKindPermission EditRequestKind = "permission_change"
)

type EditRequest struct {
	BaseModel
	RequesterID string            `gorm:"index" json:"requester_id"`
	TripID      uuid.UUID         `gorm:"type:uuid;index" json:"trip_id"`
	ActivityID  *uuid.UUID        `gorm:"type:uuid" json:"activity_id,omitempty"`
	Kind        EditRequestKind   `json:"kind"`
	Changes     datatypes.JSONMap `gorm:"type:jsonb" json:"changes"`
	Status      EditRequestStatus `gorm:"index" json:"status"`
	ResolvedBy  string            `json:"resolved_by,omitempty"`
	ResolvedAt  *int64            `json:"resolved_at,omitempty"`
}

func (r *EditRequest) IsPending() bool {
	return r.Status == EditRequestPending
}

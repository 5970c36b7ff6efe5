package court

import "time"

const (
	StatusAvailable    = "available"
	StatusMaintenance  = "maintenance"
	StatusOutOfService = "out_of_service"
)

// Role is a court's place in the facility hierarchy. It is derived from
// max_capacity, never stored.
type Role string

const (
	RolePrincipal Role = "principal"
	RoleDivision  Role = "division"
)

type Court struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	MaxCapacity int       `db:"max_capacity" json:"max_capacity"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateCourtRequest struct {
	Name        string `json:"name" binding:"required"`
	MaxCapacity int    `json:"max_capacity" binding:"required,min=1"`
}

type UpdateCourtStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available maintenance out_of_service"`
}

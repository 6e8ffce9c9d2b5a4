package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Language is a catalog entry the backend can translate between.
type Language struct {
	bun.BaseModel `bun:"table:languages,alias:lang"`

	ID         uuid.UUID `bun:",pk,type:uuid"        json:"id"`
	Code       string    `bun:"code,notnull"         json:"code"`
	Name       string    `bun:"name,notnull"         json:"name"`
	NativeName string    `bun:"native_name,notnull"  json:"native_name"`
	IsActive   bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

package status

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Check records a liveness ping from a named client. Posting the same client
// name again refreshes the existing row instead of inserting a new one.
type Check struct {
	bun.BaseModel `bun:"table:status_checks,alias:sc"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"       json:"id"`
	ClientName string    `bun:"client_name,notnull"   json:"client_name"`
	Timestamp  time.Time `bun:"timestamp,nullzero,default:current_timestamp" json:"timestamp"`
}

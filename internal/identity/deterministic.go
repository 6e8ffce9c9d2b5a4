package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

var hashOpts = []hashid.Option{
	hashid.WithHashAlgorithm(hashid.SHA256),
	hashid.WithNormalization(true),
}

// UUID maps a stable key onto a deterministic UUID. The same key always
// yields the same identifier, so seeding and re-seeding converge on one row
// instead of multiplying them.
//
// Keys carry a "go-lingo:<entity>:" prefix so separate entity spaces cannot
// collide on equal raw values.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	if uid, err := hashid.NewUUID(key, hashOpts...); err == nil && uid != uuid.Nil {
		return uid
	}
	// A key hashid refuses still has to produce a stable identifier.
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

func LanguageUUID(code string) uuid.UUID {
	return UUID("go-lingo:language:" + strings.ToLower(strings.TrimSpace(code)))
}

func ConversationUUID(key string) uuid.UUID {
	return UUID("go-lingo:conversation:" + strings.TrimSpace(key))
}

func ClientUUID(clientName string) uuid.UUID {
	return UUID("go-lingo:client:" + strings.ToLower(strings.TrimSpace(clientName)))
}

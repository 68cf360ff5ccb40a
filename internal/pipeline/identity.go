package pipeline

import (
	"strings"

	"github.com/google/uuid"
)

// playerNamespace seeds the name-derived player ids.
var playerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://swishlytics.com/players"))

// PlayerUUID returns raw when it is already a UUID, otherwise a deterministic
// id derived from the player's name, so re-running the seeder keeps ids stable.
func PlayerUUID(raw, name string) uuid.UUID {
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	return uuid.NewSHA1(playerNamespace, []byte(key))
}

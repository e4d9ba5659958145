package types

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for entity identifiers. IDs are ULIDs so they sort by creation
// time within a prefix.
const (
	UUID_PREFIX_ROOM          = "room"
	UUID_PREFIX_METER_READING = "read"
	UUID_PREFIX_BILL          = "bill"
	UUID_PREFIX_RESIDENT      = "res"
	UUID_PREFIX_MAINTENANCE   = "mnt"
	UUID_PREFIX_PRODUCT       = "prod"
	UUID_PREFIX_SALE          = "sale"
	UUID_PREFIX_USER          = "user"
	UUID_PREFIX_TENANT        = "tenant"
	UUID_PREFIX_REQUEST       = "req"
)

// GenerateUUID returns a lowercase ULID.
func GenerateUUID() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader)
	return strings.ToLower(id.String())
}

// GenerateUUIDWithPrefix returns a ULID prefixed with the entity type,
// e.g. "room_01hgw2..." for rooms.
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}

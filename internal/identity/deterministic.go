// Package identity derives stable UUIDs for records that originate outside
// the relational store (Contentful entries, embedded reference data).
package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key. Keys should be namespaced by
// the caller so different record kinds never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntryUUID maps a Contentful sys.id onto the relational primary key. Entries
// pushed from the database use the row UUID as sys.id and map back onto it.
func EntryUUID(sysID string) uuid.UUID {
	sysID = strings.TrimSpace(sysID)
	if sysID == "" {
		return uuid.Nil
	}
	if id, err := uuid.Parse(sysID); err == nil {
		return id
	}
	return UUID("vendcms:contentful_entry:" + sysID)
}

// ChildUUID identifies the position-th child of kind under parent, e.g. the
// third image of a machine.
func ChildUUID(parent uuid.UUID, kind string, position int) uuid.UUID {
	return UUID("vendcms:" + kind + ":" + parent.String() + ":" + strconv.Itoa(position))
}

// BusinessGoalUUID identifies embedded business goal reference data.
func BusinessGoalUUID(slug string) uuid.UUID {
	return UUID("vendcms:business_goal:" + strings.ToLower(strings.TrimSpace(slug)))
}

// ParseOrEntry parses raw as a UUID, falling back to EntryUUID so callers can
// pass either a database id or a Contentful sys.id.
func ParseOrEntry(raw string) uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	return EntryUUID(raw)
}

package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding); ~40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return prefix + "-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}

func idExists(db *DB, id string) bool {
	for _, p := range db.Profiles {
		if p.ID == id {
			return true
		}
	}
	for _, p := range db.Projects {
		if p.ID == id {
			return true
		}
	}
	for _, t := range db.Tasks {
		if t.ID == id {
			return true
		}
		for _, st := range t.SubTasks {
			if st.ID == id {
				return true
			}
		}
	}
	return false
}

// NextID mints a fresh id with the given readable prefix (task-xxx,
// proj-xxx, prof-xxx, sub-xxx).
func (s Store) NextID(db *DB, prefix string) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(db, id) {
			return id
		}
	}
	// crypto/rand failure or repeated collisions: fall back to a counter.
	n := 1
	for idExists(db, fmt.Sprintf("%s-%d", prefix, n)) {
		n++
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}

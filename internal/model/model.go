// Package model defines domain entities used by services and repositories.
package model

import (
	"crypto/md5"

	"github.com/gofrs/uuid/v5"
)

// Account is a registered user of the device. The password is stored as typed.
type Account struct {
	ID       uuid.UUID // PK, derived from Name
	Name     string
	Password string
}

// SavedPassword is a single stored secret owned by an account.
type SavedPassword struct {
	ID        int64     // store-assigned PK, 0 until inserted
	AccountID uuid.UUID // FK -> accounts.id
	Title     string
	Note      string
	Secret    string
}

// AccountID derives the account identity from its name: a name-based version 3
// UUID over the raw name bytes, without a namespace prefix.
func AccountID(name string) uuid.UUID {
	sum := md5.Sum([]byte(name))
	id := uuid.UUID(sum)
	id.SetVersion(uuid.V3)
	id.SetVariant(uuid.VariantRFC9562)
	return id
}

// ClonePasswords returns an independent copy of ps; nil stays nil.
func ClonePasswords(ps []SavedPassword) []SavedPassword {
	if ps == nil {
		return nil
	}
	out := make([]SavedPassword, len(ps))
	copy(out, ps)
	return out
}

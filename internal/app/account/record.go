/*
Package account implements the user-account core: identifier and secret
validation, Basic credential verification against the persisted snapshot, and
the create, read, update and delete operations applied to it.

Every operation performs a full load-modify-save cycle through a Store. There
is no locking between the load and the save, so concurrent writers can lose
updates. Passwords are kept in plaintext and compared with ordinary equality.
*/
package account

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is the persisted state of a single account. The user_id is not part of
// the record; it is the key under which the record is stored in a Snapshot.
type Record struct {
	Password string `json:"password"`
	Nickname string `json:"nickname"`

	// Comment is nil when the account has no comment. An empty comment is never stored.
	Comment *string `json:"comment,omitempty"`
}

// Snapshot is the whole user table, keyed by user_id.
type Snapshot map[string]Record

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, rec := range s {
		if rec.Comment != nil {
			c := *rec.Comment
			rec.Comment = &c
		}
		out[id] = rec
	}
	return out
}

// DecodeSnapshot parses the persisted JSON form of a snapshot.
// Empty input and a JSON null both decode to an empty snapshot.
// Fields other than password, nickname and comment are dropped.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Snapshot{}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// EncodeSnapshot renders a snapshot in its persisted JSON form.
// Non-ASCII nicknames and comments are written as-is, without HTML escaping.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	if snap == nil {
		snap = Snapshot{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// View is the outward representation of an account.
type View struct {
	UserID   string  `json:"user_id"`
	Nickname string  `json:"nickname"`
	Comment  *string `json:"comment,omitempty"`
}

// viewOf builds the View of the record stored under userID. A record persisted
// without a nickname presents its user_id instead.
func viewOf(userID string, rec Record) View {
	v := View{UserID: userID, Nickname: rec.Nickname}
	if v.Nickname == "" {
		v.Nickname = userID
	}
	if rec.Comment != nil {
		c := *rec.Comment
		v.Comment = &c
	}
	return v
}

// Patch is a partial update. A nil field was not supplied; a non-nil field
// pointing at "" resets the nickname or removes the comment.
type Patch struct {
	Nickname *string
	Comment  *string
}

// Changes reports the resulting value of every field the patch supplied.
// Fields the patch did not supply are nil and omitted from JSON.
type Changes struct {
	Nickname *string `json:"nickname,omitempty"`
	Comment  *string `json:"comment,omitempty"`
}

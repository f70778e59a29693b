// Package links holds the link table: the durable mapping from a Discord
// member id to the Minecraft player name that member claimed.
//
// Callers load the table fresh for every event, mutate it in memory and save
// it back whole. There is no long-lived cache.
package links

import (
	"maps"
	"slices"
)

// Table maps directory identities (Discord member ids) to remote identities
// (player names). The JSON layout is the on-disk format.
type Table struct {
	LinkedUsers map[string]string `json:"linkedUsers"`
}

// Record is one member to player pairing, used for listings.
type Record struct {
	MemberID   string `json:"member_id" yaml:"member_id"`
	RemoteName string `json:"remote_name" yaml:"remote_name"`
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{LinkedUsers: make(map[string]string)}
}

// Get returns the player name linked to memberID.
func (t *Table) Get(memberID string) (string, bool) {
	if t == nil || t.LinkedUsers == nil {
		return "", false
	}
	name, ok := t.LinkedUsers[memberID]
	return name, ok
}

// Set links memberID to name, replacing any previous link.
func (t *Table) Set(memberID, name string) {
	if t.LinkedUsers == nil {
		t.LinkedUsers = make(map[string]string)
	}
	t.LinkedUsers[memberID] = name
}

// Delete removes the link of memberID and reports whether one existed.
func (t *Table) Delete(memberID string) bool {
	if _, ok := t.Get(memberID); !ok {
		return false
	}
	delete(t.LinkedUsers, memberID)
	return true
}

// Len returns the number of links.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.LinkedUsers)
}

// MembersFor returns every member linked to name, sorted. More than one
// member may claim the same player.
func (t *Table) MembersFor(name string) []string {
	var members []string
	for _, r := range t.Records() {
		if r.RemoteName == name {
			members = append(members, r.MemberID)
		}
	}
	return members
}

// Records returns the links sorted by member id.
func (t *Table) Records() []Record {
	if t.Len() == 0 {
		return []Record{}
	}
	ids := slices.Sorted(maps.Keys(t.LinkedUsers))
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, Record{MemberID: id, RemoteName: t.LinkedUsers[id]})
	}
	return records
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	if t != nil {
		maps.Copy(c.LinkedUsers, t.LinkedUsers)
	}
	return c
}

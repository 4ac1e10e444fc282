package domain

import "time"

// SnapshotVersion tags exported snapshots; imports accept any version
// but require both collections to be present.
const SnapshotVersion = "1.13a"

// Snapshot is the full exported store state used for backup, restore
// and migration between deployments.
type Snapshot struct {
	Users     []User               `json:"users"`
	Chats     map[string][]Message `json:"chats"`
	Timestamp time.Time            `json:"timestamp"`
	Version   string               `json:"version"`
}

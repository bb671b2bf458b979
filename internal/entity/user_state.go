package entity

import "time"

// UserState is the remote per-user document: one row per identity holding the
// whole AppState as a JSON blob. Writes replace the document wholesale
// (last-full-write-wins), except subscription merge-writes.
type UserState struct {
	UserID     string `gorm:"primarykey"`
	Doc        string `gorm:"type:longtext"`
	LastSynced time.Time
}

// LeaderboardRow is the durable copy of a leaderboard entry; the redis sorted
// set is rebuilt from these rows when it is missing.
type LeaderboardRow struct {
	UserID      string `gorm:"primarykey"`
	DisplayName string
	TotalXP     int
	Level       int
	LastUpdated time.Time
}

// LeaderboardEntry is the read-model row returned to clients.
type LeaderboardEntry struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	TotalXP     int       `json:"totalXP"`
	Level       int       `json:"level"`
	Rank        int       `json:"rank"`
	LastUpdated time.Time `json:"lastUpdated"`
}

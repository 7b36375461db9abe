// Package mazeapi exposes maze tables over HTTP.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-maze/service/i"
)

// DifficultyRequest selects a difficulty preset, for a new table or an existing one.
type DifficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

// LeaderboardResponse lists the best solves of a difficulty.
type LeaderboardResponse struct {
	Difficulty string               `json:"difficulty"`
	Entries    []i.LeaderboardEntry `json:"entries"`
}

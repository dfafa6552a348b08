package competitive

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/storage"
)

// LeaderboardScore is the best score for one leaderboard, saved under
// `<id>-Score`.
type LeaderboardScore struct {
	ID    string
	score int

	store storage.Store
}

func NewLeaderboardScore(store storage.Store, id string) *LeaderboardScore {
	return &LeaderboardScore{ID: id, score: store.GetInt(scoreKey(id), 0), store: store}
}

func scoreKey(id string) string {
	return id + "-Score"
}

func (l *LeaderboardScore) Score() int {
	return l.score
}

// UpdateScore keeps score only when it beats the saved one. It reports
// whether the score changed.
func (l *LeaderboardScore) UpdateScore(score int) (bool, error) {
	if score <= l.score {
		return false, nil
	}
	l.score = score
	return true, l.Save()
}

func (l *LeaderboardScore) Reset() error {
	l.score = 0
	return l.Save()
}

func (l *LeaderboardScore) Save() error {
	if err := l.store.SetInt(scoreKey(l.ID), l.score); err != nil {
		return fmt.Errorf("func Save - leaderboard `%s`: %w", l.ID, err)
	}
	return nil
}

// Package competitive tracks achievements and leaderboard scores locally and
// mirrors them to a platform game service when one is connected.
package competitive

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/spaghettifunk/zippy/engine/storage"
)

// EPSILON is how close to 1 the percentage must be to count as achieved.
const EPSILON float32 = 1e-6

/**
 * @brief Achievement is a percentage in [0,1] persisted under
 * `<id>-Percentage`, plus an achieved flag under `<id>-Achieved` that, once
 * set, is never cleared.
 */
type Achievement struct {
	ID         string
	percentage float32
	achieved   bool

	store storage.Store
}

// NewAchievement loads the saved progress of id.
func NewAchievement(store storage.Store, id string) *Achievement {
	return &Achievement{
		ID:         id,
		percentage: store.GetFloat(percentageKey(id), 0),
		achieved:   store.GetBool(achievedKey(id), false),
		store:      store,
	}
}

func percentageKey(id string) string {
	return id + "-Percentage"
}

func achievedKey(id string) string {
	return id + "-Achieved"
}

func (a *Achievement) Percentage() float32 {
	return a.percentage
}

func (a *Achievement) Achieved() bool {
	return a.achieved
}

// SetProgress clamps p to [0,1] and saves it.
func (a *Achievement) SetProgress(p float32) error {
	a.percentage = math.Clamp(p, 0, 1)
	if math.Abs(a.percentage-1) <= EPSILON {
		a.achieved = true
	}
	return a.Save()
}

func (a *Achievement) IncrementProgress(p float32) error {
	return a.SetProgress(a.percentage + p)
}

// ResetProgress zeroes the percentage. An achievement stays achieved.
func (a *Achievement) ResetProgress() error {
	a.percentage = 0
	return a.Save()
}

func (a *Achievement) Save() error {
	err := errors.Join(
		a.store.SetFloat(percentageKey(a.ID), a.percentage),
		a.store.SetBool(achievedKey(a.ID), a.achieved),
	)
	if err != nil {
		return fmt.Errorf("func Save - achievement `%s`: %w", a.ID, err)
	}
	return nil
}

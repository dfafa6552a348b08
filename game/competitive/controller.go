package competitive

import "github.com/spaghettifunk/zippy/engine/core"

// Controller is a platform game service. Every call reports failure as false.
type Controller interface {
	// Connect signs in and calls onComplete with the outcome, possibly later.
	Connect(onComplete func(connected bool))
	UpdateAchievement(a *Achievement) bool
	UpdateLeaderboard(l *LeaderboardScore) bool
	ViewAchievements() bool
	ViewLeaderboards() bool
}

// OfflineController is used where no game service exists. It never
// connects, so progress stays local.
type OfflineController struct{}

func (OfflineController) Connect(onComplete func(connected bool)) {
	core.LogInfo("no game service on this platform, progress is kept locally")
	if onComplete != nil {
		onComplete(false)
	}
}

func (OfflineController) UpdateAchievement(*Achievement) bool {
	return false
}

func (OfflineController) UpdateLeaderboard(*LeaderboardScore) bool {
	return false
}

func (OfflineController) ViewAchievements() bool {
	return false
}

func (OfflineController) ViewLeaderboards() bool {
	return false
}

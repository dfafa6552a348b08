package competitive

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/storage"
)

/**
 * @brief Manager owns the achievements and leaderboards of the game. Progress
 * is always saved locally; it reaches the platform service only while
 * connected. Achieved achievements are frozen.
 */
type Manager struct {
	store      storage.Store
	controller Controller
	connected  bool

	achievements []*Achievement
	leaderboards []*LeaderboardScore
}

// NewManager falls back to OfflineController when controller is nil.
func NewManager(store storage.Store, controller Controller) *Manager {
	if controller == nil {
		controller = OfflineController{}
	}
	return &Manager{store: store, controller: controller}
}

// LoadData reads the saved state of every achievement and leaderboard.
func (m *Manager) LoadData(achievementIDs, leaderboardIDs []string) {
	m.achievements = make([]*Achievement, len(achievementIDs))
	for i, id := range achievementIDs {
		m.achievements[i] = NewAchievement(m.store, id)
	}
	m.leaderboards = make([]*LeaderboardScore, len(leaderboardIDs))
	for i, id := range leaderboardIDs {
		m.leaderboards[i] = NewLeaderboardScore(m.store, id)
	}
	core.LogDebug("loaded %d achievements and %d leaderboards", len(m.achievements), len(m.leaderboards))
}

func (m *Manager) Connected() bool {
	return m.connected
}

// Connect signs in once. The outcome arrives through the controller.
func (m *Manager) Connect() {
	if m.connected {
		return
	}
	m.controller.Connect(func(connected bool) {
		m.connected = connected
		core.LogInfo("game service connected: %t", connected)
	})
}

func (m *Manager) GetAchievement(index int) (*Achievement, error) {
	if index < 0 || index >= len(m.achievements) {
		err := fmt.Errorf("func GetAchievement - no achievement at index %d: %w", index, core.ErrIndexOutOfRange)
		core.LogError("%s", err)
		return nil, err
	}
	return m.achievements[index], nil
}

func (m *Manager) GetLeaderboard(index int) (*LeaderboardScore, error) {
	if index < 0 || index >= len(m.leaderboards) {
		err := fmt.Errorf("func GetLeaderboard - no leaderboard at index %d: %w", index, core.ErrIndexOutOfRange)
		core.LogError("%s", err)
		return nil, err
	}
	return m.leaderboards[index], nil
}

// updateAchievement applies change to an achievement that is not achieved
// yet, then pushes it to the service.
func (m *Manager) updateAchievement(index int, change func(a *Achievement) error) error {
	a, err := m.GetAchievement(index)
	if err != nil {
		return err
	}
	if a.Achieved() {
		return nil
	}
	if err := change(a); err != nil {
		core.LogError("%s", err)
		return err
	}
	if m.connected && !m.controller.UpdateAchievement(a) {
		core.LogWarn("game service rejected achievement `%s`", a.ID)
	}
	return nil
}

func (m *Manager) SetAchievementProgress(index int, progress float32) error {
	return m.updateAchievement(index, func(a *Achievement) error {
		return a.SetProgress(progress)
	})
}

func (m *Manager) IncrementAchievementProgress(index int, progress float32) error {
	return m.updateAchievement(index, func(a *Achievement) error {
		return a.IncrementProgress(progress)
	})
}

func (m *Manager) ResetProgress(index int) error {
	return m.updateAchievement(index, (*Achievement).ResetProgress)
}

// UpdateLeaderboardProgress keeps score when it is a new best.
func (m *Manager) UpdateLeaderboardProgress(index int, score int) error {
	l, err := m.GetLeaderboard(index)
	if err != nil {
		return err
	}
	changed, err := l.UpdateScore(score)
	if err != nil {
		core.LogError("%s", err)
		return err
	}
	if changed && m.connected && !m.controller.UpdateLeaderboard(l) {
		core.LogWarn("game service rejected score %d for `%s`", score, l.ID)
	}
	return nil
}

func (m *Manager) ResetLeaderboard(index int) error {
	l, err := m.GetLeaderboard(index)
	if err != nil {
		return err
	}
	return l.Reset()
}

func (m *Manager) ViewAchievements() bool {
	return m.connected && m.controller.ViewAchievements()
}

func (m *Manager) ViewLeaderboards() bool {
	return m.connected && m.controller.ViewLeaderboards()
}

package constants

// World canvas.
const (
	ZORDER_BACKGROUND = iota
	ZORDER_PLATFORM
	ZORDER_COLLECTIBLE
	ZORDER_PLAYER
	ZORDER_GOBLIN
)

// UI canvas.
const (
	ZORDER_CONTROLS = iota
	ZORDER_TRANSITION_BG
	ZORDER_TRANSITION_TEXT
	ZORDER_SCORE_TEXT
	ZORDER_HEALTH_BG
	ZORDER_HEALTH_FG
)

const ZORDER_LIVES = ZORDER_SCORE_TEXT

// Canvas order: the world draws under the UI.
const (
	CANVAS_WORLD = 0
	CANVAS_UI    = 1
)

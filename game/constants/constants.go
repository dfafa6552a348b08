// Package constants holds the gameplay tuning values, collision categories
// and save ids shared by every game package.
package constants

import "github.com/spaghettifunk/zippy/engine/physics"

const (
	PLAYER_CATEGORY        = physics.Cat1
	PLATFORM_CATEGORY      = physics.Cat2
	ENEMY_CATEGORY         = physics.Cat3
	PLATFORM_TURN_CATEGORY = physics.Cat4
	COLLECTIBLE_CATEGORY   = physics.Cat5
	LIMIT_CATEGORY         = physics.Cat6
)

const (
	PLAYER_MAX_HEALTH float32 = 100
	PLAYER_SPEED      float32 = 300
	ENEMY_SPEED       float32 = 150
)

/** @brief Glyphs of the kromasky font sheet, in sheet order. */
const KROMASKY_CHARACTERS = " !\"©❤%_'[]¬+,-./0123456789:;{|}?¦abcdefghijklmnopqrstuvwxyz"

const (
	KROMASKY_FONT    = "Content/Fonts/kromasky.fnt"
	KROMASKY_TEXTURE = "Content/Graphics/UI/kromasky.png"
)

// LIVES_SAVE_ID is where the number of lives a run starts with is kept.
const LIVES_SAVE_ID = "ZippyStartLives"

const (
	ACHIEVEMENT_FINISH_LEVEL      = 0
	ACHIEVEMENT_FINISH_ALL_LEVELS = 1
	LEADERBOARD_SCORE             = 0
)

var ACHIEVEMENT_IDS = []string{
	"com.xamarintutorials.zippysadventure.finishlevel",
	"com.xamarintutorials.zippysadventure.finishalllevels",
}

var LEADERBOARD_IDS = []string{
	"com.xamarintutorials.zippysadventure.totalscores",
}

const (
	SCORE_COIN           = 100
	SCORE_ENEMY          = 500
	SCORE_LEVEL_COMPLETE = 1000
)

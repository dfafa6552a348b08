package engine

import (
	"github.com/spaghettifunk/zippy/engine/audio"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/renderer"
	"github.com/spaghettifunk/zippy/engine/storage"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return "unknown"
}

type ApplicationConfig struct {
	Config *core.Config
	// BaseDir holds the content root. Defaults to the working directory.
	BaseDir string

	// The fields below replace the real services; all optional. A headless
	// run without a Device records draw calls instead of opening a window.
	Device      renderer.Device
	Clock       core.TimeSource
	AudioOutput audio.Output
	Store       storage.Store
}

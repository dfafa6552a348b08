package scene

import (
	"time"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

const FADE_TIME = 330 * time.Millisecond

// Toggle is a control that is switched off while a fade runs.
type Toggle interface {
	SetTouchEnabled(enabled bool)
}

/**
 * @brief FadeScene linearly moves the alpha of every member from a start to
 * a target value over FADE_TIME, then fires its OnFade hook once. Controls
 * are disabled when a fade starts; re-enabling them is up to the hook.
 */
type FadeScene struct {
	*Scene

	controls    []Toggle
	startAlpha  float32
	targetAlpha float32
	elapsed     time.Duration
	fading      bool
	onFade      core.Hook
}

func NewFadeScene(registry Registry) *FadeScene {
	f := &FadeScene{Scene: NewScene(registry)}
	f.Attach(f)
	return f
}

func (f *FadeScene) AddControl(t Toggle) {
	f.controls = append(f.controls, t)
}

func (f *FadeScene) SetControlsEnabled(enabled bool) {
	for _, t := range f.controls {
		t.SetTouchEnabled(enabled)
	}
}

func (f *FadeScene) Fading() bool {
	return f.fading
}

// StartFade replaces any running fade. The replaced hook never fires.
func (f *FadeScene) StartFade(startAlpha, targetAlpha float32, onFade func()) {
	f.elapsed = 0
	f.startAlpha = startAlpha
	f.targetAlpha = targetAlpha
	f.onFade.Set(onFade)
	f.fading = true
	f.SetControlsEnabled(false)
	f.SetAlpha(startAlpha)
}

func (f *FadeScene) CanUpdate() bool {
	return f.Scene.CanUpdate() && f.fading
}

func (f *FadeScene) Update(dt time.Duration) {
	if !f.fading {
		return
	}
	f.elapsed += dt
	if f.elapsed >= FADE_TIME {
		f.fading = false
		f.SetAlpha(f.targetAlpha)
		f.onFade.Fire()
		return
	}
	t := float32(f.elapsed.Seconds() / FADE_TIME.Seconds())
	f.SetAlpha(math.Lerp(f.startAlpha, f.targetAlpha, t))
}

func (f *FadeScene) Dispose() {
	f.onFade.Clear()
	f.fading = false
	f.controls = nil
	f.Scene.Dispose()
}

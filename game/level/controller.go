// Package level tracks which level file is being played.
package level

import (
	"fmt"

	"github.com/spaghettifunk/zippy/engine/content"
	"github.com/spaghettifunk/zippy/engine/core"
)

// TextSource reads a content file by name. The asset manager satisfies it.
type TextSource interface {
	LoadText(name string) (string, error)
}

// Name is the content name of level i. Levels are numbered from 0.
func Name(i int) string {
	return fmt.Sprintf("Content/Levels/Level%d.csv", i)
}

// Level is one parsed level file.
type Level struct {
	Name    string
	Records []content.Record
}

func Load(source TextSource, name string) (*Level, error) {
	text, err := source.LoadText(name)
	if err != nil {
		return nil, fmt.Errorf("func Load - level `%s`: %w", name, err)
	}
	return &Level{Name: name, Records: content.Parse(text)}, nil
}

/**
 * @brief Controller walks the levels in order. Every level is read when the
 * controller is built so a missing file fails at start up, not mid-run.
 */
type Controller struct {
	source  TextSource
	levels  []*Level
	current int
}

func NewController(source TextSource, numberOfLevels int) (*Controller, error) {
	if numberOfLevels <= 0 {
		err := fmt.Errorf("func NewController - number of levels %d: %w", numberOfLevels, core.ErrInvalidValue)
		core.LogError("%s", err)
		return nil, err
	}
	c := &Controller{source: source}
	for i := 0; i < numberOfLevels; i++ {
		l, err := Load(source, Name(i))
		if err != nil {
			core.LogError("%s", err)
			return nil, err
		}
		c.levels = append(c.levels, l)
	}
	return c, nil
}

func (c *Controller) CurrentLevelIndex() int {
	return c.current
}

func (c *Controller) NumberOfLevels() int {
	return len(c.levels)
}

// CurrentLevel fails with ErrIndexOutOfRange once every level is done.
func (c *Controller) CurrentLevel() (*Level, error) {
	if c.GameComplete() {
		return nil, fmt.Errorf("func CurrentLevel - level %d of %d: %w", c.current, len(c.levels), core.ErrIndexOutOfRange)
	}
	return c.levels[c.current], nil
}

func (c *Controller) GameComplete() bool {
	return c.current >= len(c.levels)
}

func (c *Controller) ChangeLevel() {
	c.current++
}

func (c *Controller) Reset() {
	c.current = 0
}

// Reload re-reads a level file after it changed on disk. Names that are not
// one of the controller's levels are ignored.
func (c *Controller) Reload(name string) (bool, error) {
	for i, l := range c.levels {
		if l.Name != name {
			continue
		}
		fresh, err := Load(c.source, name)
		if err != nil {
			return false, err
		}
		c.levels[i] = fresh
		return true, nil
	}
	return false, nil
}

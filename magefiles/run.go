//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens a window and runs the game.
func (Run) Game() error {
	fmt.Println("Run zippy...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "configs/zippy.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs ten seconds of game time without a window.
func (Run) Headless() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/zippy", withArgs("-config", "configs/zippy.toml", "-headless", "-frames", "600"), withStream())
	return err
}

package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the app (welcome card, heart game, reasons, ...).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update handles input for the elapsed frame.
	Update(deltaTime time.Duration)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换时会调用 Close 释放资源
type Closer interface {
	Close()
}

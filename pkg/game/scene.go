package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one layer of the window (background star field, foreground overlay).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Unmounter 是一个可选接口，用于在窗口关闭时释放场景资源
//
// 实现此接口的场景会在 SceneManager.Close() 时被调用 Unmount()，
// 调用顺序为从顶层到底层。
type Unmounter interface {
	// Unmount 停止场景的所有后台工作并释放资源
	// 多次调用必须是安全的
	Unmount()
}

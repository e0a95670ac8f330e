package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneManager keeps the window's layers in stacking order.
// Layers are updated and drawn bottom to top, so the first pushed layer is
// composited beneath every later one.
type SceneManager struct {
	layers []Scene
	logger *zap.Logger
	closed bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no layers; use Push to add them.
func NewSceneManager(logger *zap.Logger) *SceneManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneManager{
		logger: logger,
	}
}

// Push 在最上层添加一个场景
func (sm *SceneManager) Push(scene Scene) {
	if scene == nil {
		return
	}
	sm.layers = append(sm.layers, scene)
	sm.logger.Debug("layer pushed", zap.Int("depth", len(sm.layers)))
}

// Layers 返回当前的图层列表（从底到顶）
func (sm *SceneManager) Layers() []Scene {
	return append([]Scene(nil), sm.layers...)
}

// Update updates every layer from the bottom up.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.closed {
		return
	}
	for _, scene := range sm.layers {
		scene.Update(deltaTime)
	}
}

// Draw renders every layer to the provided screen, bottom first.
// If no layer is present, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.closed {
		return
	}
	for _, scene := range sm.layers {
		scene.Draw(screen)
	}
}

// Close 卸载所有实现了 Unmounter 的图层（从顶到底）
//
// 重复调用是安全的；Close 之后 Update 和 Draw 不再执行任何操作。
func (sm *SceneManager) Close() {
	if sm.closed {
		return
	}
	sm.closed = true
	for i := len(sm.layers) - 1; i >= 0; i-- {
		if u, ok := sm.layers[i].(Unmounter); ok {
			u.Unmount()
		}
	}
	sm.logger.Debug("layers unmounted", zap.Int("count", len(sm.layers)))
}

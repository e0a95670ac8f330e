package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FrameStats is what the overlay reports about the renderer.
type FrameStats interface {
	Frames() uint64
	Drawn() int
	Running() bool
}

// OverlayScene is the foreground layer: the site title and, when enabled,
// renderer statistics. It never consumes input.
type OverlayScene struct {
	title     string
	stats     FrameStats
	showStats bool
}

// NewOverlayScene 创建前景图层
func NewOverlayScene(title string, stats FrameStats, showStats bool) *OverlayScene {
	return &OverlayScene{
		title:     title,
		stats:     stats,
		showStats: showStats,
	}
}

// Update does nothing; the overlay is static.
func (o *OverlayScene) Update(deltaTime float64) {}

// Draw prints the title and the stats line.
func (o *OverlayScene) Draw(screen *ebiten.Image) {
	if o.title != "" {
		ebitenutil.DebugPrintAt(screen, o.title, 12, 8)
	}
	if !o.showStats || o.stats == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, o.StatsLine(ebiten.ActualFPS()), 12, 24)
}

// StatsLine formats the stats for a given frame rate.
func (o *OverlayScene) StatsLine(fps float64) string {
	if o.stats == nil {
		return ""
	}
	state := "running"
	if !o.stats.Running() {
		state = "stopped"
	}
	return fmt.Sprintf("FPS %.0f  frames %d  drawn %d  %s", fps, o.stats.Frames(), o.stats.Drawn(), state)
}

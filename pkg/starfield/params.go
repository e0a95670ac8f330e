// Package starfield implements the warp-speed particle field renderer.
//
// A Session owns a Field of particles and drives it through a Host: the host
// hands out the drawing surface, reports the viewport size, schedules frame
// callbacks and delivers resize signals. Hosts exist for ebiten windows
// (pkg/game), tcell terminals (internal/terminal) and headless rendering
// (pkg/raster plus FrameLoop).
package starfield

import (
	"fmt"
	"image/color"
)

// Params 定义星空动画的可调参数
type Params struct {
	Count         int           // 粒子数量
	Speed         float64       // 每帧深度递减量
	Focal         float64       // 透视焦距
	MinSize       float64       // 基础尺寸下限（含）
	MaxSize       float64       // 基础尺寸上限（不含）
	GlowThreshold float64       // 半径超过此值时绘制光晕
	GlowBlur      float64       // 光晕模糊半径
	Trail         color.NRGBA   // 每帧覆盖的半透明拖尾色
	Palette       []color.NRGBA // 粒子颜色表
}

// DefaultPalette returns the seven star colors.
func DefaultPalette() []color.NRGBA {
	return []color.NRGBA{
		{R: 255, G: 255, B: 255, A: 255}, // white
		{R: 200, G: 200, B: 255, A: 255}, // blue-ish
		{R: 255, G: 200, B: 200, A: 255}, // red-ish
		{R: 255, G: 255, B: 200, A: 255}, // yellow-ish
		{R: 167, G: 139, B: 250, A: 255}, // violet-400
		{R: 236, G: 72, B: 153, A: 255},  // pink-500
		{R: 99, G: 102, B: 241, A: 255},  // indigo
	}
}

// DefaultParams 返回默认参数
func DefaultParams() Params {
	return Params{
		Count:         800,
		Speed:         0.8,
		Focal:         128,
		MinSize:       0.5,
		MaxSize:       2.5,
		GlowThreshold: 2,
		GlowBlur:      10,
		Trail:         color.NRGBA{R: 5, G: 5, B: 10, A: 77}, // rgba(5, 5, 10, 0.3)
		Palette:       DefaultPalette(),
	}
}

// Validate 检查参数有效性
func (p Params) Validate() error {
	if p.Count <= 0 {
		return fmt.Errorf("count must be > 0, got %d", p.Count)
	}
	if p.Speed <= 0 {
		return fmt.Errorf("speed must be > 0, got %v", p.Speed)
	}
	if p.Focal <= 0 {
		return fmt.Errorf("focal must be > 0, got %v", p.Focal)
	}
	if p.MinSize < 0 {
		return fmt.Errorf("minSize must be >= 0, got %v", p.MinSize)
	}
	if p.MaxSize <= p.MinSize {
		return fmt.Errorf("maxSize must be > minSize (%v), got %v", p.MinSize, p.MaxSize)
	}
	if p.GlowThreshold < 0 {
		return fmt.Errorf("glowThreshold must be >= 0, got %v", p.GlowThreshold)
	}
	if p.GlowBlur < 0 {
		return fmt.Errorf("glowBlur must be >= 0, got %v", p.GlowBlur)
	}
	if len(p.Palette) == 0 {
		return fmt.Errorf("palette cannot be empty")
	}
	return nil
}

// clone copies the palette so callers can't mutate a running field.
func (p Params) clone() Params {
	p.Palette = append([]color.NRGBA(nil), p.Palette...)
	return p
}

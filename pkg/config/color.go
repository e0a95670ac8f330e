package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseColor 解析 CSS 风格的颜色字符串
//
// 支持的格式：
//   - "#rgb", "#rrggbb"
//   - "rgb(r, g, b)"，分量为 0~255
//   - "rgba(r, g, b, a)"，a 为 0.0~1.0
//
// 返回的颜色为非预乘 alpha。
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
}

// FormatColor 将颜色格式化为 rgba() 字符串（ParseColor 的逆操作）
func FormatColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
		strconv.FormatFloat(float64(c.A)/255, 'f', -1, 64))
}

func parseHex(h string) (color.NRGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("hex color must have 3 or 6 digits, got %q", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", h, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func parseFunc(args string, n int) (color.NRGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return color.NRGBA{}, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("component %d: %w", i, err)
		}
		if v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("component %d must be between 0 and 255, got %d", i, v)
		}
		rgb[i] = uint8(v)
	}

	alpha := uint8(255)
	if n == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("alpha: %w", err)
		}
		if a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("alpha must be between 0 and 1, got %v", a)
		}
		alpha = uint8(math.Round(a * 255))
	}

	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

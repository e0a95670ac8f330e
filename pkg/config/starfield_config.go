package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/starfield/pkg/embedded"
	"github.com/gonewx/starfield/pkg/starfield"
)

// DefaultStarfieldConfigPath 嵌入的默认配置文件路径
const DefaultStarfieldConfigPath = "data/starfield.yaml"

// StarfieldConfig 星空背景配置
//
// 加载顺序：内置默认值 -> YAML 文件 -> STARFIELD_* 环境变量。
type StarfieldConfig struct {
	Count         int      `yaml:"count" env:"STARFIELD_COUNT"`                      // 粒子数量
	Speed         float64  `yaml:"speed" env:"STARFIELD_SPEED"`                      // 每帧深度递减
	Focal         float64  `yaml:"focal" env:"STARFIELD_FOCAL"`                      // 透视焦距
	MinSize       float64  `yaml:"minSize" env:"STARFIELD_MIN_SIZE"`                 // 基础尺寸下限
	MaxSize       float64  `yaml:"maxSize" env:"STARFIELD_MAX_SIZE"`                 // 基础尺寸上限
	GlowThreshold float64  `yaml:"glowThreshold" env:"STARFIELD_GLOW_THRESHOLD"`     // 光晕半径阈值
	GlowBlur      float64  `yaml:"glowBlur" env:"STARFIELD_GLOW_BLUR"`               // 光晕模糊半径
	Seed          uint64   `yaml:"seed" env:"STARFIELD_SEED"`                        // 随机种子，0 表示使用时钟
	Trail         string   `yaml:"trail" env:"STARFIELD_TRAIL"`                      // 拖尾颜色
	Palette       []string `yaml:"palette" env:"STARFIELD_PALETTE" envSeparator:";"` // 调色板
	Window        Window   `yaml:"window"`                                           // 窗口设置
}

// Window 窗口模式设置
type Window struct {
	Width      int    `yaml:"width" env:"STARFIELD_WINDOW_WIDTH"`
	Height     int    `yaml:"height" env:"STARFIELD_WINDOW_HEIGHT"`
	Title      string `yaml:"title" env:"STARFIELD_WINDOW_TITLE"`
	Fullscreen bool   `yaml:"fullscreen" env:"STARFIELD_FULLSCREEN"`
}

// DefaultStarfieldConfig 返回与 starfield.DefaultParams 一致的配置
func DefaultStarfieldConfig() *StarfieldConfig {
	p := starfield.DefaultParams()
	palette := make([]string, len(p.Palette))
	for i, c := range p.Palette {
		palette[i] = FormatColor(c)
	}
	return &StarfieldConfig{
		Count:         p.Count,
		Speed:         p.Speed,
		Focal:         p.Focal,
		MinSize:       p.MinSize,
		MaxSize:       p.MaxSize,
		GlowThreshold: p.GlowThreshold,
		GlowBlur:      p.GlowBlur,
		Trail:         "rgba(5, 5, 10, 0.3)",
		Palette:       palette,
		Window: Window{
			Width:  1280,
			Height: 800,
			Title:  "Language Translator",
		},
	}
}

// ParseStarfieldConfig 解析 YAML 文档，缺省的字段保留默认值
func ParseStarfieldConfig(data []byte) (*StarfieldConfig, error) {
	cfg := DefaultStarfieldConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse starfield YAML: %w", err)
	}
	if err := validateStarfieldConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid starfield config: %w", err)
	}
	return cfg, nil
}

// LoadStarfieldConfig 加载配置并应用环境变量覆盖
//
// 参数：
//   - filePath: 配置文件路径；为空时读取嵌入的 data/starfield.yaml，
//     嵌入资源未初始化时使用内置默认值
//
// 返回：
//   - *StarfieldConfig: 校验通过的配置
//   - error: 读取、解析、环境变量或校验失败
func LoadStarfieldConfig(filePath string) (*StarfieldConfig, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case filePath != "":
		data, err = os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read starfield config file: %w", err)
		}
	case embedded.IsInitialized():
		data, err = embedded.ReadFile(DefaultStarfieldConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded starfield config: %w", err)
		}
	}

	cfg := DefaultStarfieldConfig()
	if data != nil {
		if cfg, err = ParseStarfieldConfig(data); err != nil {
			return nil, err
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := validateStarfieldConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid starfield config: %w", err)
	}
	return cfg, nil
}

// Params 转换为渲染参数
func (c *StarfieldConfig) Params() (starfield.Params, error) {
	trail, err := ParseColor(c.Trail)
	if err != nil {
		return starfield.Params{}, fmt.Errorf("trail: %w", err)
	}

	palette := make([]color.NRGBA, 0, len(c.Palette))
	for i, s := range c.Palette {
		col, err := ParseColor(s)
		if err != nil {
			return starfield.Params{}, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette = append(palette, col)
	}

	p := starfield.Params{
		Count:         c.Count,
		Speed:         c.Speed,
		Focal:         c.Focal,
		MinSize:       c.MinSize,
		MaxSize:       c.MaxSize,
		GlowThreshold: c.GlowThreshold,
		GlowBlur:      c.GlowBlur,
		Trail:         trail,
		Palette:       palette,
	}
	if err := p.Validate(); err != nil {
		return starfield.Params{}, err
	}
	return p, nil
}

// validateStarfieldConfig 验证配置的有效性
func validateStarfieldConfig(c *StarfieldConfig) error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be > 0, got %dx%d", c.Window.Width, c.Window.Height)
	}
	_, err := c.Params()
	return err
}

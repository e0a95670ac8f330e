// snapshot - 星空离屏渲染工具
// 不打开窗口，使用软件光栅画布渲染若干帧并保存为 PNG，
// 用于检查配置效果和生成截图
package main

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gonewx/starfield/pkg/app"
	"github.com/gonewx/starfield/pkg/config"
	"github.com/gonewx/starfield/pkg/game"
	"github.com/gonewx/starfield/pkg/raster"
	"github.com/gonewx/starfield/pkg/starfield"
)

// options 渲染参数
type options struct {
	configPath string
	width      int
	height     int
	frames     int
	seed       uint64
	background bool
	out        string
	verbose    bool
}

var opts = options{
	width:      800,
	height:     600,
	frames:     120,
	seed:       1,
	background: true,
	out:        "starfield.png",
}

var rootCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render star field frames headless and save a PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := app.NewLogger(opts.verbose, "")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		img, err := render(opts, logger)
		if err != nil {
			return err
		}
		if err := writePNG(opts.out, img); err != nil {
			return err
		}
		logger.Info("snapshot written", zap.String("path", opts.out))
		return nil
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: built-in defaults)")
	flags.IntVar(&opts.width, "width", opts.width, "image width")
	flags.IntVar(&opts.height, "height", opts.height, "image height")
	flags.IntVarP(&opts.frames, "frames", "n", opts.frames, "frames to render")
	flags.Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	flags.BoolVar(&opts.background, "background", opts.background, "composite over the page gradient")
	flags.StringVarP(&opts.out, "out", "o", opts.out, "output PNG path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
}

// render 运行会话 o.frames 帧并返回最终画面
func render(o options, logger *zap.Logger) (*image.RGBA, error) {
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("image size must be > 0, got %dx%d", o.width, o.height)
	}
	if o.frames < 1 {
		return nil, fmt.Errorf("frames must be >= 1, got %d", o.frames)
	}

	settings, err := config.LoadStarfieldConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	params, err := settings.Params()
	if err != nil {
		return nil, err
	}

	canvas := raster.New(0, 0)
	host := game.NewHost(func() starfield.Canvas { return canvas })
	host.SetViewport(o.width, o.height)

	session := starfield.NewSession(host, params,
		starfield.WithSeed(o.seed),
		starfield.WithLogger(logger.Named("session")))
	if !session.Start() {
		return nil, errors.New("drawing surface unavailable")
	}
	defer session.Stop()

	// Start 已经绘制了第一帧
	for i := 1; i < o.frames; i++ {
		host.Tick()
	}
	logger.Debug("frames rendered",
		zap.Uint64("frames", session.Frames()),
		zap.Int("drawn", session.Drawn()))

	if !o.background {
		out := image.NewRGBA(canvas.Image().Bounds())
		draw.Draw(out, out.Bounds(), canvas.Image(), image.Point{}, draw.Src)
		return out, nil
	}
	out := raster.VerticalGradient(o.width, o.height, raster.BackgroundStops...)
	draw.Draw(out, out.Bounds(), canvas.Image(), image.Point{}, draw.Over)
	return out, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

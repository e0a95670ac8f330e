// Package app 提供星空背景应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端、终端模式和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用，
// 终端模式通过 RunTerminal() 运行。
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/gonewx/starfield/pkg/config"
	"github.com/gonewx/starfield/pkg/game"
	"github.com/gonewx/starfield/pkg/starfield"
)

// ErrWatchWithoutConfig is returned when hot reload is requested for the
// embedded configuration, which has no file to watch.
var ErrWatchWithoutConfig = errors.New("--watch requires --config")

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// Watch 监听配置文件变化并热加载
	Watch bool
	// Seed 随机种子，非 0 时覆盖配置文件中的 seed
	Seed uint64
	// ShowStats 在前景图层显示帧统计
	ShowStats bool
	// Canvas 自定义绘图表面（测试用），为空则使用 ebiten 离屏图像
	Canvas game.CanvasFactory
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	logger   *zap.Logger
	settings *config.StarfieldConfig
	host     *game.Host
	session  *starfield.Session
	layers   *game.SceneManager

	watcher *config.Watcher
	cancel  context.CancelFunc
	closed  bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，如需使用嵌入的默认配置，必须先调用 embedded.Init()。
// 会话不会立即启动：第一次 Update 且窗口尺寸已知时才挂载。
func NewApp(cfg Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings, params, err := loadSettings(cfg)
	if err != nil {
		return nil, err
	}

	host := game.NewHost(cfg.Canvas)
	session := starfield.NewSession(host, params, sessionOptions(cfg, settings, logger)...)

	layers := game.NewSceneManager(logger.Named("layers"))
	layers.Push(game.NewStarfieldScene(host, session, logger.Named("scene")))
	layers.Push(game.NewOverlayScene(settings.Window.Title, session, cfg.ShowStats))

	a := &App{
		logger:   logger.Named("app"),
		settings: settings,
		host:     host,
		session:  session,
		layers:   layers,
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.watcher, err = startWatcher(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, err
	}

	a.logger.Info("app initialized",
		zap.Int("count", params.Count),
		zap.Bool("watch", a.watcher != nil))
	return a, nil
}

// Update 更新逻辑，每个 tick 调用一次（通常每秒 60 次）
//
// 顺序：先应用热加载的参数，再派发 resize 与帧回调，最后更新图层（挂载）。
func (a *App) Update() error {
	if a.closed {
		return nil
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.step()
	return nil
}

// step 执行一个 tick 的渲染逻辑，不读取输入
func (a *App) step() {
	a.applyReloads()
	a.host.Tick()

	deltaTime := 1.0 / 60.0
	a.layers.Update(deltaTime)
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.layers.Draw(screen)
}

// Layout 记录窗口尺寸并使用 1:1 的逻辑尺寸
//
// 星空铺满整个窗口，因此逻辑尺寸跟随窗口变化，变化会在下一次 Update 中
// 触发粒子重建。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.host.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 卸载图层并停止配置监听。重复调用是安全的。
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.cancel()
	a.layers.Close()
	a.logger.Debug("app closed", zap.Uint64("frames", a.session.Frames()))
}

// Window 返回窗口设置
func (a *App) Window() config.Window {
	return a.settings.Window
}

// Session 返回渲染会话
func (a *App) Session() *starfield.Session {
	return a.session
}

// Host 返回 ebiten 宿主
func (a *App) Host() *game.Host {
	return a.host
}

func (a *App) applyReloads() {
	if a.watcher == nil {
		return
	}
	select {
	case params := <-a.watcher.Updates():
		if err := a.session.Reconfigure(params); err != nil {
			a.logger.Warn("rejected reloaded params", zap.Error(err))
		}
	default:
	}
}

// loadSettings 加载配置并转换为渲染参数
func loadSettings(cfg Config) (*config.StarfieldConfig, starfield.Params, error) {
	if cfg.Watch && cfg.ConfigPath == "" {
		return nil, starfield.Params{}, ErrWatchWithoutConfig
	}
	settings, err := config.LoadStarfieldConfig(cfg.ConfigPath)
	if err != nil {
		return nil, starfield.Params{}, fmt.Errorf("配置加载失败: %w", err)
	}
	params, err := settings.Params()
	if err != nil {
		return nil, starfield.Params{}, fmt.Errorf("配置无效: %w", err)
	}
	return settings, params, nil
}

// sessionOptions 组合会话选项；命令行种子优先于配置文件种子
func sessionOptions(cfg Config, settings *config.StarfieldConfig, logger *zap.Logger) []starfield.Option {
	opts := []starfield.Option{starfield.WithLogger(logger.Named("session"))}
	seed := cfg.Seed
	if seed == 0 {
		seed = settings.Seed
	}
	if seed != 0 {
		opts = append(opts, starfield.WithSeed(seed))
	}
	return opts
}

// startWatcher 在启用热加载时启动配置监听
func startWatcher(ctx context.Context, cfg Config, logger *zap.Logger) (*config.Watcher, error) {
	if !cfg.Watch {
		return nil, nil
	}
	w, err := config.NewWatcher(cfg.ConfigPath, logger.Named("config"))
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}

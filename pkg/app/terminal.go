package app

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/gonewx/starfield/internal/terminal"
	"github.com/gonewx/starfield/pkg/starfield"
)

// ErrNoColor is returned by RunTerminal when the terminal cannot show colors.
var ErrNoColor = errors.New("terminal does not support colors")

// RunTerminal 在终端中运行星空，直到 ctx 结束或用户退出（Esc、q、Ctrl-C）
//
// screen 必须已经 Init；调用方负责在返回后调用 Fini。
// cfg.Canvas 在终端模式下被忽略。
func RunTerminal(ctx context.Context, screen tcell.Screen, cfg Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings, params, err := loadSettings(cfg)
	if err != nil {
		return err
	}

	host := terminal.New(screen, logger.Named("terminal"))
	session := starfield.NewSession(host, params, sessionOptions(cfg, settings, logger)...)

	watcher, err := startWatcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Stop()
	}

	if !session.Start() {
		return ErrNoColor
	}
	defer session.Stop()

	screen.HideCursor()
	return host.Run(ctx, func() {
		if watcher == nil {
			return
		}
		select {
		case p := <-watcher.Updates():
			if err := session.Reconfigure(p); err != nil {
				logger.Warn("rejected reloaded params", zap.Error(err))
			}
		default:
		}
	})
}

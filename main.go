package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gonewx/starfield/pkg/app"
	"github.com/gonewx/starfield/pkg/embedded"
)

var (
	// Global flags
	configPath string
	watch      bool
	seed       uint64
	showStats  bool
	verbose    bool
	logFile    string

	// Logger
	logger *zap.Logger
)

// rootCmd opens the star field in a window
var rootCmd = &cobra.Command{
	Use:   "starfield",
	Short: "Animated star field background",
	Long: `Renders a field of colored particles flying toward the viewer,
composited over a dark gradient, with the page title on top.

Run without arguments to open a window. Use "starfield term" to render
in the terminal instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := logFile
		if path == "" && cmd.Name() == termCmd.Name() {
			path = "starfield.log"
		}
		var err error
		logger, err = app.NewLogger(verbose, path)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

// termCmd renders in the terminal with half-block pixels
var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render the star field in the terminal",
	Long: `Renders the star field with tcell, two pixels per character cell.
Press Esc, q or Ctrl-C to quit. Logs go to starfield.log unless --log-file is set.`,
	RunE: runTerminal,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default: embedded data/starfield.yaml)")
	flags.BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")
	flags.Uint64Var(&seed, "seed", 0, "random seed, 0 uses the config seed or the clock")
	flags.BoolVar(&showStats, "stats", false, "show frame statistics")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(termCmd)
}

func appConfig() app.Config {
	return app.Config{
		Verbose:    verbose,
		ConfigPath: configPath,
		Watch:      watch,
		Seed:       seed,
		ShowStats:  showStats,
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	gameApp, err := app.NewApp(appConfig(), logger)
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}
	defer gameApp.Close()

	win := gameApp.Window()
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(win.Fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RunTerminal(ctx, screen, appConfig(), logger)
}

func main() {
	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/decker502/valentine/internal/term"
	"github.com/decker502/valentine/pkg/app"
	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/embedded"
	"github.com/decker502/valentine/pkg/logging"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose     bool
	contentPath string
	watchFile   bool
	useTUI      bool
	fullscreen  bool
	mute        bool
	seed        int64
)

// rootCmd 打开窗口（或终端界面）运行整个流程
var rootCmd = &cobra.Command{
	Use:   "valentine",
	Short: "A small Valentine greeting with a heart-catching mini-game",
	Long: `valentine shows a greeting card, a heart-catching mini-game, a list of
reasons and the big question.

Copy lives in data/content.yaml (embedded). Use --content to load your own file
and --watch to reload it while the app is running.

Flags can also be set through VALENTINE_* environment variables or a .env file.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	// .env 可选，不存在时忽略；需要在定义参数前加载，环境变量才能作为默认值
	_ = godotenv.Load()

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", envBool("VALENTINE_VERBOSE"), "Enable debug logging")
	rootCmd.Flags().StringVarP(&contentPath, "content", "c", os.Getenv("VALENTINE_CONTENT"), "Content YAML file (default: embedded)")
	rootCmd.Flags().BoolVarP(&watchFile, "watch", "w", envBool("VALENTINE_WATCH"), "Reload the content file when it changes")
	rootCmd.Flags().BoolVar(&useTUI, "tui", envBool("VALENTINE_TUI"), "Run in the terminal instead of a window")
	rootCmd.Flags().BoolVarP(&fullscreen, "fullscreen", "f", envBool("VALENTINE_FULLSCREEN"), "Start in fullscreen")
	rootCmd.Flags().BoolVar(&mute, "mute", envBool("VALENTINE_MUTE"), "Disable sound cues")
	rootCmd.Flags().Int64Var(&seed, "seed", envInt64("VALENTINE_SEED"), "Random seed for heart placement (0: time based)")
}

func run(cmd *cobra.Command, args []string) error {
	if watchFile && contentPath == "" {
		return fmt.Errorf("--watch requires --content")
	}

	embedded.Init(dataFS)

	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	// 终端界面下日志会破坏画面，只保留警告
	if useTUI && !verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}
	defer func() { _ = logger.Sync() }()

	cfg := app.Config{
		Verbose:     verbose,
		ContentPath: contentPath,
		Watch:       watchFile,
		Fullscreen:  fullscreen,
		Mute:        mute,
		Seed:        seed,
		Logger:      logger,
	}

	if useTUI {
		return runTerminal(cmd.Context(), cfg)
	}
	return runWindow(cfg)
}

func runWindow(cfg app.Config) error {
	gameApp, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

func runTerminal(ctx context.Context, cfg app.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := app.NewComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer comps.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	return term.New(screen, comps.Controller, comps.Layout, comps.Updates(), comps.Logger).Run(ctx)
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envInt64(key string) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

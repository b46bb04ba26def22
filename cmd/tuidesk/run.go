package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/tuidesk/internal/app"
	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/terminal"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
)

// nerdDetectTimeout bounds the font detection done at startup and on reload.
const nerdDetectTimeout = 2 * time.Second

// motionFilter drops hover events unless a window or an icon is being
// dragged. Nothing else in the desktop reacts to them and they arrive at a
// high rate.
func motionFilter(desk *app.Desk) func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		m, ok := msg.(tea.MouseMotionMsg)
		if !ok || m.Button != tea.MouseNone {
			return msg
		}
		if _, dragging := desk.Windows().Dragging(); dragging || desk.Router().Desktop.DraggingIcon() {
			return msg
		}
		return nil
	}
}

func resolveNerd(ctx context.Context, mode string) bool {
	ctx, cancel := context.WithTimeout(ctx, nerdDetectTimeout)
	defer cancel()
	return ui.ResolveNerdFonts(ctx, mode)
}

// openLog opens the log file and returns a logger writing to it and ring.
func openLog(ring *app.LogRing, debug bool) (*log.Logger, string, io.Closer, error) {
	path, err := config.GetLogPath()
	if err != nil {
		return nil, "", nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", nil, fmt.Errorf("open log: %w", err)
	}
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(io.MultiWriter(f, ring), log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, path, f, nil
}

func runDesk(ctx context.Context, f *flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.CheckTerminal(os.Stdin, os.Stdout); err != nil {
		return err
	}

	ring := app.NewLogRing(app.LogCapacity)
	logger, logPath, logFile, err := openLog(ring, f.debug)
	if err != nil {
		// Keep going with the in-app log only.
		logger = log.NewWithOptions(ring, log.Options{ReportTimestamp: true, TimeFormat: time.TimeOnly})
		logger.Warn("file logging disabled", "err", err)
	} else {
		defer logFile.Close()
	}
	if f.debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, cfgPath, err := f.loadConfig()
	if err != nil {
		logger.Warn("config unavailable, using defaults", "path", cfgPath, "err", err)
	}
	f.apply(cfg)
	for _, w := range cfg.Normalize() {
		logger.Warn("config", "problem", w)
	}
	logger.Info("configuration", "path", cfgPath)

	desk := app.New(app.Options{
		Config: cfg,
		Logger: logger,
		Ring:   ring,
		Nerd:   resolveNerd(ctx, cfg.Appearance.Icons),
		About: app.AboutInfo{
			Version:    version,
			Shell:      terminal.ResolveShell(cfg.General.Shell, ""),
			ConfigPath: cfgPath,
			LogPath:    logPath,
		},
	})

	p := tea.NewProgram(
		desk,
		tea.WithContext(ctx),
		tea.WithFPS(min(max(cfg.General.FPS, config.MinFPS), config.MaxFPS)),
		tea.WithoutSignalHandler(),
		tea.WithFilter(motionFilter(desk)),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfgPath != "" {
		err := config.Watch(ctx, cfgPath, func(c *config.UserConfig, err error) {
			if err != nil {
				p.Send(app.ConfigReloadMsg{Err: err})
				return
			}
			f.apply(c)
			p.Send(app.ConfigReloadMsg{Config: c, Nerd: resolveNerd(ctx, c.Appearance.Icons)})
		})
		if err != nil {
			logger.Warn("config reload disabled", "err", err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("signal", "sig", sig)
			p.Send(app.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	_, err = p.Run()
	desk.Shutdown()
	if err != nil {
		terminal.ResetTerminal(os.Stdout)
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

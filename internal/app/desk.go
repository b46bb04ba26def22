// Package app is the desktop event loop: a bubbletea model that routes
// input, steps window contents once per frame and paints the screen.
package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuidesk/internal/config"
	"github.com/Gaurav-Gosain/tuidesk/internal/event"
	"github.com/Gaurav-Gosain/tuidesk/internal/input"
	"github.com/Gaurav-Gosain/tuidesk/internal/ui"
	"github.com/Gaurav-Gosain/tuidesk/internal/wm"
)

// frameMsg is one frame tick.
type frameMsg time.Time

// QuitMsg asks the desktop to close every window and exit. It is sent from
// the signal handler.
type QuitMsg struct{}

// iconsSavedMsg reports the result of writing icon positions.
type iconsSavedMsg struct{ err error }

// ConfigReloadMsg carries a configuration re-read after the file changed.
type ConfigReloadMsg struct {
	Config *config.UserConfig
	// Nerd is the icon glyph choice resolved for Config.
	Nerd bool
	Err  error
}

// Options configures a Desk.
type Options struct {
	Config *config.UserConfig
	Logger *log.Logger
	// Ring receives the log lines shown by the Log Viewer. The logger is
	// expected to write into it.
	Ring  *LogRing
	Nerd  bool
	About AboutInfo
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

// Desk is the desktop model.
type Desk struct {
	cfg    *config.UserConfig
	keys   *config.KeybindRegistry
	theme  *ui.Theme
	wm     *wm.Manager
	router *input.Router
	log    *log.Logger
	about  AboutInfo
	now    func() time.Time

	// Log holds recent log lines for the Log Viewer.
	Log *LogRing

	width, height      int
	pendingW, pendingH int
	resizePending      bool

	// singles maps the kinds that open at most once to their window.
	singles map[string]string

	cpu      CPUHistory
	memPct   float64
	sampling bool

	// iconsMoved is set by the router when an icon was dropped somewhere
	// new; the positions are saved after the event is handled.
	iconsMoved bool

	quitting bool
}

// New returns a desk with an empty workspace. The screen size arrives with
// the first tea.WindowSizeMsg.
func New(opts Options) *Desk {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ring := opts.Ring
	if ring == nil {
		ring = NewLogRing(LogCapacity)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(ring)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	keys := config.NewKeybindRegistry(cfg)
	m := wm.NewManager(workspace(0, 0), logger)
	router := input.NewRouter(m, ui.NewDesktop(opts.Nerd), keys, logger)
	router.Clicks.Window = cfg.DoubleClick()
	router.Desktop.SetPositions(cfg.IconPositions)

	d := &Desk{
		cfg:     cfg,
		keys:    keys,
		theme:   newTheme(cfg, logger),
		wm:      m,
		router:  router,
		log:     logger,
		about:   opts.About,
		now:     now,
		Log:     ring,
		singles: make(map[string]string),
		memPct:  -1,
	}
	router.IconMoved = func() { d.iconsMoved = true }
	return d
}

func newTheme(cfg *config.UserConfig, logger *log.Logger) *ui.Theme {
	ascii := cfg.Appearance.ASCIIOnly
	th := ui.DefaultTheme(ascii)
	if id := cfg.Appearance.Tint; id != "" {
		if tinted, ok := ui.TintedTheme(ascii, id); ok {
			th = tinted
		} else {
			logger.Warn("unknown tint, using terminal colours", "tint", id)
		}
	}
	if p := cfg.Appearance.DesktopPattern; p != "" {
		th.Glyphs.Pattern = p
	}
	return th
}

// workspace is the area between the menu bar and the taskbar.
func workspace(width, height int) uv.Rectangle {
	return uv.Rect(0, 1, max(width, 0), max(height-3, 1))
}

// Windows exposes the window manager, mainly for tests and the CLI.
func (d *Desk) Windows() *wm.Manager { return d.wm }

// Router exposes the input router.
func (d *Desk) Router() *input.Router { return d.router }

func (d *Desk) frameCmd() tea.Cmd {
	fps := min(max(d.cfg.General.FPS, config.MinFPS), config.MaxFPS)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init starts the frame ticker and the sysinfo sampler.
func (d *Desk) Init() tea.Cmd {
	d.log.Info("desktop starting", "fps", d.cfg.General.FPS)
	cmds := []tea.Cmd{d.frameCmd()}
	if d.cfg.Appearance.ShowSysinfo {
		d.sampling = true
		cmds = append(cmds, sampleSysinfo(0))
	}
	return tea.Batch(cmds...)
}

// Update applies one message. Input is routed and its outcome applied right
// away; contents are stepped and sizes reconciled on frame ticks.
func (d *Desk) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.pendingW, d.pendingH, d.resizePending = msg.Width, msg.Height, true
		if d.width == 0 || d.height == 0 {
			d.applySize()
		}
		return d, nil

	case frameMsg:
		if d.quitting {
			return d, nil
		}
		return d, tea.Batch(d.frame(), d.frameCmd())

	case sysinfoMsg:
		if msg.CPU >= 0 {
			d.cpu = d.cpu.Add(msg.CPU)
		}
		d.memPct = msg.Mem
		if !d.cfg.Appearance.ShowSysinfo || d.quitting {
			d.sampling = false
			return d, nil
		}
		return d, sampleSysinfo(SysinfoInterval)

	case ConfigReloadMsg:
		return d, d.reload(msg)

	case QuitMsg:
		return d, d.quit()

	case iconsSavedMsg:
		if msg.err != nil {
			d.log.Warn("saving icon positions failed", "err", msg.err)
		}
		return d, nil
	}

	ev, ok := input.Normalize(msg)
	if !ok {
		return d, nil
	}
	cmd := d.apply(d.router.Route(ev))
	d.layoutChrome()
	if d.iconsMoved {
		d.iconsMoved = false
		cmd = tea.Batch(cmd, d.saveIcons())
	}
	return d, cmd
}

// saveIcons records the icon layout and writes it to the config file off the
// event loop.
func (d *Desk) saveIcons() tea.Cmd {
	cells := d.router.Desktop.PositionCells()
	d.cfg.IconPositions = cells
	path := d.about.ConfigPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return iconsSavedMsg{err: config.SaveIconPositions(path, cells)}
	}
}

// frame steps every content, then resizes the contents whose area changed.
func (d *Desk) frame() tea.Cmd {
	if d.resizePending {
		d.applySize()
	}
	var cmds []tea.Cmd
	for _, w := range d.wm.Windows() {
		s, ok := w.Content().(wm.Stepper)
		if !ok {
			continue
		}
		if out := s.Step(); !out.IsNone() {
			cmds = append(cmds, d.apply(out.WithTarget(w.ID())))
		}
	}
	if err := d.wm.SyncSizes(); err != nil {
		d.log.Warn("resize failed", "err", err)
	}
	d.layoutChrome()
	return tea.Batch(cmds...)
}

func (d *Desk) applySize() {
	d.width, d.height = d.pendingW, d.pendingH
	d.resizePending = false
	d.router.Screen = uv.Rect(0, 0, d.width, d.height)
	d.wm.SetBounds(workspace(d.width, d.height))
	d.layoutChrome()
}

// layoutChrome lays out the taskbar so the router and the painter agree on
// where its buttons are.
func (d *Desk) layoutChrome() {
	var items []ui.TaskItem
	for _, w := range d.wm.Minimized() {
		items = append(items, ui.TaskItem{ID: w.ID(), Title: w.Title()})
	}
	d.router.Taskbar = ui.LayoutTaskbar(items, d.height-2, d.width)
}

// apply performs the side effects an outcome asks for.
func (d *Desk) apply(out event.Outcome) tea.Cmd {
	switch out.Kind {
	case event.OutcomeClose:
		d.closeWindow(out.Target)
	case event.OutcomeOpen:
		return d.apply(d.open(out.Open))
	case event.OutcomeError:
		d.log.Error(out.Message)
		d.router.ShowDialog(ui.MessageDialog("Error", out.Message))
	case event.OutcomeConfirm:
		onYes := event.None()
		if out.OnYes != nil {
			onYes = *out.OnYes
		}
		d.router.ShowDialog(ui.ConfirmDialog("Confirm", out.Message, onYes))
	case event.OutcomeQuit:
		return d.quit()
	}
	return nil
}

func (d *Desk) closeWindow(id string) {
	content, ok := d.wm.Close(id)
	if !ok {
		return
	}
	for kind, single := range d.singles {
		if single == id {
			delete(d.singles, kind)
		}
	}
	if c, ok := content.(wm.Closer); ok {
		if err := c.Close(); err != nil {
			d.log.Warn("close window", "id", shortID(id), "err", err)
		}
	}
}

// Shutdown closes every window and releases its resources. It is safe to
// call more than once.
func (d *Desk) Shutdown() {
	for _, w := range d.wm.Windows() {
		d.closeWindow(w.ID())
	}
}

func (d *Desk) quit() tea.Cmd {
	if !d.quitting {
		d.log.Info("desktop exiting", "windows", d.wm.Len())
	}
	d.quitting = true
	d.Shutdown()
	return tea.Quit
}

// reload applies a re-read configuration. Appearance, key bindings and the
// double click window change live; terminal settings apply to new windows.
func (d *Desk) reload(msg ConfigReloadMsg) tea.Cmd {
	if msg.Err != nil {
		d.log.Warn("config reload failed", "err", msg.Err)
		return nil
	}
	cfg := msg.Config
	for _, w := range cfg.Normalize() {
		d.log.Warn("config", "problem", w)
	}

	d.cfg.Appearance = cfg.Appearance
	d.cfg.Keybindings = cfg.Keybindings
	d.cfg.Terminal = cfg.Terminal
	d.cfg.General.DoubleClickMS = cfg.General.DoubleClickMS
	if !d.router.Desktop.DraggingIcon() {
		d.cfg.IconPositions = cfg.IconPositions
		d.router.Desktop.SetPositions(cfg.IconPositions)
	}

	// Contents hold the theme by pointer.
	*d.theme = *newTheme(d.cfg, d.log)
	d.keys = config.NewKeybindRegistry(d.cfg)
	d.router.SetKeys(d.keys)
	d.router.Clicks.Window = d.cfg.DoubleClick()
	d.router.Desktop.Nerd = msg.Nerd
	d.log.Info("config reloaded")

	if d.cfg.Appearance.ShowSysinfo && !d.sampling {
		d.sampling = true
		return sampleSysinfo(0)
	}
	return nil
}

func shortID(id string) string {
	return id[:min(8, len(id))]
}

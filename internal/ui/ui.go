// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/planetview/internal/catalog"
	"github.com/litescript/planetview/internal/logging"
	"github.com/litescript/planetview/internal/presenter"
	"github.com/litescript/planetview/internal/render"
	"github.com/litescript/planetview/internal/texture"
	"github.com/litescript/planetview/internal/version"
)

// Input tuning.
const (
	rotateStep = math.Pi / 24 // Per arrow key press
	zoomStep   = 1.1          // Dolly factor per key press or wheel notch

	menuBarHeight = 1
	panelHeight   = 4 // Title, two description lines, help

	minWidth  = 20
	minHeight = menuBarHeight + panelHeight + 3
)

// TextureLoader loads texture images by reference.
type TextureLoader interface {
	Load(ctx context.Context, ref string) (*texture.Image, error)
}

// Msg types for Bubble Tea
type (
	// frameTickMsg drives the recurring draw step.
	frameTickMsg time.Time

	// textureLoadedMsg delivers the result of a background texture load.
	textureLoadedMsg struct {
		generation uint64
		ref        string
		image      *texture.Image
		err        error
	}

	// SelectMsg asks the model to display a planet, as if it were picked
	// from a menu.
	SelectMsg struct {
		Key string
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	presenter     *presenter.Presenter
	loader        TextureLoader
	logger        *logging.Logger
	frameInterval time.Duration

	// UI state
	menus       menuBar
	title       string
	description string
	active      string // Key of the displayed planet

	width  int
	height int
	ready  bool
	frame  string // Encoded viewport, redrawn when the scene changes
	tick   int    // Frame counter for the loading spinner

	dragging     bool
	dragX, dragY int

	loadingGen uint64 // Generation whose textures are in flight
	loading    int    // Outstanding texture loads for loadingGen

	initCmds []tea.Cmd
}

// New creates the root model and shows initial, falling back to the
// default planet when initial is not in the catalog.
func New(p *presenter.Presenter, loader TextureLoader, logger *logging.Logger, frameInterval time.Duration, initial string) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	if frameInterval <= 0 {
		frameInterval = time.Second / 20
	}

	m := Model{
		presenter:     p,
		loader:        loader,
		logger:        logger,
		frameInterval: frameInterval,
		menus:         newMenuBar(p.Catalog()),
	}

	sel, err := p.Seed(initial)
	if err != nil {
		logger.Error("No planet to show: %v", err)
		return m
	}
	if sel.Key != initial {
		logger.Warn("Unknown planet %q, showing %s", initial, sel.Key)
	}
	m.applySelection(sel)
	if cmd := m.loadTextures(sel); cmd != nil {
		m.initCmds = append(m.initCmds, cmd)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{m.tickCmd()}, m.initCmds...)
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.presenter.Camera().Aspect = render.PixelAspect(m.width, m.viewportRows())
		m.redraw()

	case SelectMsg:
		cmd := m.selectPlanet(msg.Key)
		return m, cmd

	case textureLoadedMsg:
		if msg.generation == m.loadingGen && m.loading > 0 {
			m.loading--
		}
		switch {
		case msg.err != nil:
			m.logger.Warn("Texture load failed: %v", msg.err)
		case msg.image == nil:
		case m.presenter.ApplyTexture(msg.generation, msg.ref, msg.image):
			m.logger.Debug("Texture %s applied (generation %d)", msg.ref, msg.generation)
			m.redraw()
		default:
			m.logger.Debug("Dropped stale texture %s (generation %d)", msg.ref, msg.generation)
		}

	case frameTickMsg:
		m.tick++
		if m.step() || m.loading > 0 {
			m.redraw()
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t":
		m.menus.toggleGroup(catalog.GroupTerrestrial, m.active)
		return m, nil
	case "j":
		m.menus.toggleGroup(catalog.GroupJovian, m.active)
		return m, nil
	}

	if m.menus.isOpen() {
		switch key {
		case "up", "ctrl+p":
			m.menus.move(-1)
		case "down", "ctrl+n":
			m.menus.move(1)
		case "left":
			m.menus.shift(-1, m.active)
		case "right", "tab":
			m.menus.shift(1, m.active)
		case "enter", " ":
			if spec, ok := m.menus.current(); ok {
				cmd := m.selectPlanet(spec.Key)
				return m, cmd
			}
		case "esc":
			m.menus.close()
		}
		return m, nil
	}

	controls := m.presenter.Controls()
	switch key {
	case "left", "h":
		controls.RotateLeft(rotateStep)
	case "right", "l":
		controls.RotateLeft(-rotateStep)
	case "up":
		controls.RotateUp(rotateStep)
	case "down":
		controls.RotateUp(-rotateStep)
	case "+", "=":
		controls.Dolly(zoomStep)
	case "-", "_":
		controls.Dolly(1 / zoomStep)
	case "r":
		controls.Reset(m.presenter.Camera())
		m.redraw()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	controls := m.presenter.Controls()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		controls.Dolly(zoomStep)

	case msg.Button == tea.MouseButtonWheelDown:
		controls.Dolly(1 / zoomStep)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y < menuBarHeight {
			if i := m.menus.buttonAt(msg.X); i >= 0 {
				m.menus.toggle(i, m.active)
				return m, nil
			}
		}
		if m.menus.isOpen() {
			// Items below the viewport are not drawn.
			row := msg.Y - menuBarHeight
			if i := m.menus.itemAt(msg.X, row); i >= 0 && row < m.viewportRows() {
				m.menus.cursor = i
				spec, _ := m.menus.current()
				cmd := m.selectPlanet(spec.Key)
				return m, cmd
			}
			m.menus.close()
			return m, nil
		}
		if m.inViewport(msg.Y) {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}

	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx := msg.X - m.dragX
		dy := msg.Y - m.dragY
		m.dragX, m.dragY = msg.X, msg.Y
		if w := m.width; w > 0 {
			controls.RotateLeft(2 * math.Pi * float64(dx) / float64(w))
		}
		if h := m.viewportRows(); h > 0 {
			controls.RotateUp(math.Pi * float64(dy) / float64(h))
		}

	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}

	return m, nil
}

// selectPlanet swaps the displayed planet. Unknown keys leave the screen
// as it is.
func (m *Model) selectPlanet(key string) tea.Cmd {
	sel, err := m.presenter.SelectPlanet(key)
	if err != nil {
		m.logger.Debug("Ignoring selection: %v", err)
		return nil
	}
	m.logger.Info("Showing %s (generation %d)", sel.Title, sel.Generation)
	m.applySelection(sel)
	return m.loadTextures(sel)
}

func (m *Model) applySelection(sel presenter.Selection) {
	m.title = sel.Title
	m.description = sel.Description
	m.active = sel.Key
	m.dragging = false
	m.menus.close()
	m.redraw()
}

// loadTextures starts a background load for each texture of sel. Loads
// are never cancelled; results for a replaced body are dropped on arrival.
func (m *Model) loadTextures(sel presenter.Selection) tea.Cmd {
	m.loadingGen = sel.Generation
	m.loading = 0
	if m.loader == nil || len(sel.Textures) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(sel.Textures))
	for _, ref := range sel.Textures {
		cmds = append(cmds, loadTextureCmd(m.loader, sel.Generation, ref))
	}
	m.loading = len(cmds)
	return tea.Batch(cmds...)
}

func loadTextureCmd(loader TextureLoader, generation uint64, ref string) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(context.Background(), ref)
		return textureLoadedMsg{generation: generation, ref: ref, image: img, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// step advances the orbit controls and reports whether the camera moved.
func (m Model) step() bool {
	cam := m.presenter.Camera()
	pos, target := cam.Position, cam.Target
	m.presenter.Controls().Update(cam)
	return cam.Position != pos || cam.Target != target
}

// viewportRows is the number of terminal rows the 3D view occupies.
func (m Model) viewportRows() int {
	rows := m.height - menuBarHeight - panelHeight
	if rows < 1 {
		return 1
	}
	return rows
}

func (m Model) inViewport(y int) bool {
	return y >= menuBarHeight && y < menuBarHeight+m.viewportRows()
}

func (m *Model) redraw() {
	if !m.ready {
		return
	}
	f := render.Draw(m.presenter.Graph(), m.presenter.Camera(), m.width, m.viewportRows())
	m.frame = f.Encode()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal too small for planet view"
	}

	lines := strings.Split(m.frame, "\n")
	for i, item := range m.menus.items(m.active) {
		if i < len(lines) {
			lines[i] = item
		}
	}

	return m.renderMenuBar() + "\n" + strings.Join(lines, "\n") + "\n" + m.renderPanel()
}

func (m Model) renderMenuBar() string {
	bar := m.menus.view()
	wordmark := renderWordmark("planetview")
	gap := m.width - lipgloss.Width(bar) - lipgloss.Width(wordmark) - 1
	if gap < 1 {
		return bar
	}
	return bar + strings.Repeat(" ", gap) + wordmark
}

func (m Model) renderPanel() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(m.width - 2).MaxHeight(2)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	title := " " + titleStyle.Render(m.title)
	if m.loading > 0 {
		spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		spinner := spinnerFrames[m.tick%len(spinnerFrames)]
		title += "  " + accentStyle.Render(spinner) + dimStyle.Render(" loading textures")
	}

	desc := descStyle.Render(m.description)
	if n := strings.Count(desc, "\n") + 1; n < 2 {
		desc += strings.Repeat("\n", 2-n)
	}
	desc = indent(desc, " ")

	help := dimStyle.MaxWidth(m.width).Render(fmt.Sprintf(" t/j: menus | ←↑↓→: orbit | +/-: zoom | r: reset | q: quit  v%s", version.Version))

	return title + "\n" + desc + "\n" + help
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// Title returns the displayed planet's name.
func (m Model) Title() string {
	return m.title
}

// Description returns the displayed planet's description.
func (m Model) Description() string {
	return m.description
}

// Active returns the key of the displayed planet.
func (m Model) Active() string {
	return m.active
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsandov/scrpair/internal/config"
	"github.com/rsandov/scrpair/internal/controller"
	"github.com/rsandov/scrpair/internal/discovery"
	"github.com/rsandov/scrpair/internal/netsuggest"
	"github.com/rsandov/scrpair/internal/qr"
)

// Input field indices
const (
	fieldPairHost = iota
	fieldPairPort
	fieldPairCode
	fieldConnHost
	fieldConnPort
	fieldCount
)

// maxLogLines caps the retained activity log; the view shows the tail.
const maxLogLines = 200

// Messages for async operations
type eventMsg struct {
	ev controller.Event
}

type suggestMsg struct {
	local string
	peer  string
}

type pairingFoundMsg struct {
	dev *discovery.Device
}

// keyMap defines key bindings for the pairing screen
type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Pair       key.Binding
	Connect    key.Binding
	Mirror     key.Binding
	Regenerate key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Pair, k.Connect, k.Mirror, k.Regenerate, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Pair, k.Connect, k.Mirror},
		{k.Regenerate, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Pair: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "pair"),
		),
		Connect: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "connect"),
		),
		Mirror: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "mirror"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "new QR"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// bridgeState tracks the outcome of the bridge availability check.
type bridgeState int

const (
	bridgeChecking bridgeState = iota
	bridgeReady
	bridgeUnavailable
)

// Model is the single-screen pairing UI. It is the caller-facing side of
// the controller: it enqueues requests and renders events, never blocking
// on an external command itself.
type Model struct {
	ctrl            *controller.Controller
	discoverTimeout time.Duration

	inputs [fieldCount]textinput.Model
	focus  int

	spinner   spinner.Model
	busy      bool
	busyLabel string

	qrArt   string
	payload string

	bridge    bridgeState
	canMirror bool

	logLines []string

	help help.Model
	keys keyMap

	width  int
	height int
}

// NewModel creates the pairing screen bound to a controller.
func NewModel(ctrl *controller.Controller, prefs *config.Preferences) Model {
	if prefs == nil {
		prefs = config.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	var inputs [fieldCount]textinput.Model
	mk := func(placeholder string, limit, width int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = width
		return in
	}
	inputs[fieldPairHost] = mk("device IP", 45, 22)
	inputs[fieldPairPort] = mk("pairing port", 5, 22)
	inputs[fieldPairCode] = mk("pairing code (QR code used if empty)", 36, 38)
	inputs[fieldConnHost] = mk("device IP", 45, 22)
	inputs[fieldConnPort] = mk(prefs.ConnectPort, 5, 22)
	inputs[fieldPairHost].Focus()

	m := Model{
		ctrl:            ctrl,
		discoverTimeout: prefs.DiscoverTimeout(),
		inputs:          inputs,
		spinner:         s,
		bridge:          bridgeChecking,
		help:            help.New(),
		keys:            newKeyMap(),
	}
	m.refreshQR()
	return m
}

// Init starts the bridge check, address suggestion and pairing-service
// discovery, and arms the controller event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForEvent(m.ctrl.Events()),
		checkBridge(m.ctrl),
		suggestAddresses,
		watchForPairing(m.discoverTimeout),
	)
}

// waitForEvent pumps one controller event into the program. It is re-armed
// after every delivery, preserving the controller's emission order.
func waitForEvent(events <-chan controller.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

func checkBridge(ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.CheckBridge()
		return nil
	}
}

func suggestAddresses() tea.Msg {
	local, peer, err := netsuggest.Suggest()
	if err != nil || peer == "" {
		return nil
	}
	return suggestMsg{local: local, peer: peer}
}

func watchForPairing(timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		scanner := discovery.NewScanner()
		scanner.Timeout = timeout
		dev, err := scanner.WaitForPairing(context.Background())
		if err != nil {
			return nil
		}
		return pairingFoundMsg{dev: dev}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m = m.applyEvent(msg.ev)
		return m, waitForEvent(m.ctrl.Events())

	case suggestMsg:
		if m.inputs[fieldPairHost].Value() == "" {
			m.inputs[fieldPairHost].SetValue(msg.peer)
		}
		if m.inputs[fieldConnHost].Value() == "" {
			m.inputs[fieldConnHost].SetValue(msg.peer)
		}
		return m.appendLog(fmt.Sprintf("Local network: %s. Suggested device IP: %s", msg.local, msg.peer)), nil

	case pairingFoundMsg:
		m.inputs[fieldPairHost].SetValue(msg.dev.IP)
		m.inputs[fieldPairPort].SetValue(fmt.Sprintf("%d", msg.dev.Port))
		m = m.appendLog(fmt.Sprintf("Pairing service advertised at %s", msg.dev.Addr()))
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil

	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil

	case key.Matches(msg, m.keys.Regenerate):
		m.ctrl.Regenerate()
		m.refreshQR()
		return m.appendLog("Regenerated QR. Rescan 'Pair device with QR code' on the phone."), nil

	case key.Matches(msg, m.keys.Pair):
		return m.requestPair()

	case key.Matches(msg, m.keys.Connect):
		return m.requestConnect()

	case key.Matches(msg, m.keys.Mirror):
		return m.requestMirror()
	}

	// Everything else goes to the focused input.
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) requestPair() (tea.Model, tea.Cmd) {
	host := strings.TrimSpace(m.inputs[fieldPairHost].Value())
	port := strings.TrimSpace(m.inputs[fieldPairPort].Value())
	code := strings.TrimSpace(m.inputs[fieldPairCode].Value())
	if code == "" {
		code = m.ctrl.Credential().Password
	}
	if host == "" || port == "" {
		return m.appendLog("✗ Please enter both pairing IP and port"), nil
	}

	m.busy = true
	m.busyLabel = "Pairing"
	m.ctrl.Pair(host, port, code)
	return m, nil
}

func (m Model) requestConnect() (tea.Model, tea.Cmd) {
	host := strings.TrimSpace(m.inputs[fieldConnHost].Value())
	port := strings.TrimSpace(m.inputs[fieldConnPort].Value())
	if port == "" {
		port = m.inputs[fieldConnPort].Placeholder
	}
	if host == "" {
		return m.appendLog("✗ Please enter the connection IP"), nil
	}

	m.busy = true
	m.busyLabel = "Connecting"
	m.ctrl.Connect(host, port)
	return m, nil
}

func (m Model) requestMirror() (tea.Model, tea.Cmd) {
	if !m.canMirror {
		return m.appendLog("✗ Connect to the device before starting the mirror"), nil
	}
	m.busy = true
	m.busyLabel = "Launching mirror"
	m.ctrl.LaunchMirror()
	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	return m
}

// applyEvent folds one controller event into the view state.
func (m Model) applyEvent(ev controller.Event) Model {
	switch ev := ev.(type) {
	case controller.Log:
		if m.bridge == bridgeChecking {
			m.bridge = bridgeReady
		}
		return m.appendLog(ev.Text)

	case controller.BridgeUnavailable:
		m.bridge = bridgeUnavailable
		m.busy = false
		return m.appendLog("✗ " + ev.Reason)

	case controller.Paired:
		m.busy = false
		m.inputs[fieldConnHost].SetValue(ev.Host)
		m.inputs[fieldConnPort].SetValue(ev.Port)
		m = m.appendLog("✓ Paired with device")
		return m.appendLog(fmt.Sprintf("Ready to connect to %s:%s — press ctrl+o", ev.Host, ev.Port))

	case controller.Connected:
		m.busy = false
		m.canMirror = true
		return m.appendLog("✓ Connected over Wi-Fi. Press ctrl+s to start the mirror.")

	case controller.MirrorStarted:
		m.busy = false
		return m.appendLog("✓ Mirror started on " + ev.Serial)

	case controller.Error:
		m.busy = false
		return m.appendLog("✗ " + ev.Reason)
	}
	return m
}

func (m Model) appendLog(text string) Model {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		m.logLines = append(m.logLines, line)
	}
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	return m
}

func (m *Model) refreshQR() {
	cred := m.ctrl.Credential()
	m.payload = cred.QRPayload()

	art, err := qr.Terminal(m.payload)
	if err != nil {
		m.qrArt = "QR rendering failed: " + err.Error()
		return
	}
	m.qrArt = art
}

// View renders the pairing screen
func (m Model) View() string {
	left := m.renderQRPanel()
	right := m.renderControlPanel()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(AppName),
		body,
		HelpStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) renderQRPanel() string {
	hint := SubtitleStyle.Render(
		"Phone: Settings → Developer options →\n" +
			"Wireless debugging → Pair device with QR code")

	content := lipgloss.JoinVertical(lipgloss.Center,
		strings.TrimRight(m.qrArt, "\n"),
		"",
		SubtitleStyle.Render(m.payload),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		QRBoxStyle.Render(content),
		hint,
	)
}

func (m Model) renderControlPanel() string {
	var b strings.Builder

	b.WriteString(m.renderBridgeStatus())
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Manual pairing"))
	b.WriteString("\n")
	b.WriteString(m.renderField("Pair IP", fieldPairHost))
	b.WriteString(m.renderField("Pair port", fieldPairPort))
	b.WriteString(m.renderField("Code", fieldPairCode))
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render("Connection"))
	b.WriteString("\n")
	b.WriteString(m.renderField("Connect IP", fieldConnHost))
	b.WriteString(m.renderField("Connect port", fieldConnPort))
	b.WriteString("\n")

	if m.busy {
		b.WriteString(StatusPendingStyle.Render(fmt.Sprintf("%s %s…", m.spinner.View(), m.busyLabel)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderLog())

	return b.String()
}

func (m Model) renderBridgeStatus() string {
	switch m.bridge {
	case bridgeReady:
		return StatusReadyStyle.Render("● adb ready")
	case bridgeUnavailable:
		return StatusErrorStyle.Render("● adb unavailable")
	default:
		return StatusPendingStyle.Render(m.spinner.View() + " verifying adb…")
	}
}

func (m Model) renderField(label string, idx int) string {
	return LabelStyle.Render(label+":") + " " + m.inputs[idx].View() + "\n"
}

func (m Model) renderLog() string {
	const visible = 8

	lines := m.logLines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	var styled []string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "✗"):
			styled = append(styled, LogErrorStyle.Render(line))
		case strings.HasPrefix(line, "✓"):
			styled = append(styled, LogOKStyle.Render(line))
		default:
			styled = append(styled, line)
		}
	}
	for len(styled) < visible {
		styled = append(styled, "")
	}

	return LogBoxStyle.Render(strings.Join(styled, "\n"))
}

// Run builds the pairing screen and blocks until the user quits.
func Run(ctrl *controller.Controller, prefs *config.Preferences) error {
	p := tea.NewProgram(NewModel(ctrl, prefs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

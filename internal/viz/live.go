package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heatsim/internal/bridge"
	"github.com/san-kum/heatsim/internal/sim"
)

const (
	frameRate       = time.Second / 60
	historyCapacity = 600
	maxStepsPerTick = 64
)

type TickMsg time.Time

// Model steps a simulator once per frame and draws its particles.
type Model struct {
	sim      *sim.Simulator
	cfg      sim.Config
	title    string
	theme    Theme
	tick     int
	perFrame int
	running  bool
	showHelp bool
	last     sim.Snapshot
	totals   bridge.Stats
	energy   []float64
	mean     []float64
}

func NewModel(s *sim.Simulator, cfg sim.Config, title string) Model {
	return Model{
		sim:      s,
		cfg:      cfg,
		title:    title,
		theme:    ThemeForge,
		perFrame: 1,
		running:  true,
		last:     sim.Snapshot{Temperatures: s.World().Temperatures()},
		energy:   make([]float64, 0, historyCapacity),
		mean:     make([]float64, 0, historyCapacity),
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return frame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			if m.perFrame < maxStepsPerTick {
				m.perFrame *= 2
			}
		case "-", "_":
			if m.perFrame > 1 {
				m.perFrame /= 2
			}
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.perFrame && !m.done(); i++ {
				m.step()
			}
		}
		return m, frame()
	}
	return m, nil
}

func (m Model) done() bool {
	return m.cfg.Ticks > 0 && m.tick >= m.cfg.Ticks
}

func (m *Model) step() {
	m.tick++
	m.last = m.sim.Step(m.tick, m.cfg.TickRate)
	m.totals.Merge(m.last.Stats)

	m.energy = appendCapped(m.energy, m.last.Energy)
	m.mean = appendCapped(m.mean, mean(m.last.Temperatures))
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(GradientText(strings.ToUpper(m.title), m.theme.Primary, m.theme.Accent)) + "\n")

	status := "RUNNING"
	if m.done() {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(m.theme.status(m.running && !m.done()).Render(status))
	if m.cfg.Ticks > 0 {
		s.WriteString("  " + ProgressBar(float64(m.tick)/float64(m.cfg.Ticks), 30))
	}
	s.WriteString("\n\n")

	s.WriteString(panelStyle.Render(Swatches(m.last.Temperatures, 16)) + "\n")

	if len(m.mean) > 1 {
		chart := asciigraph.Plot(m.mean, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("Mean temperature (K)"))
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d (x%d)", m.tick, m.perFrame)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.last.Time)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(humanize.SIWithDigits(m.last.Energy, 4, "J")) + "\n")
	s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(Sparkline(m.energy, 30)) + "\n")
	s.WriteString(labelStyle.Render("Exchanges") + valueStyle.Render(fmt.Sprintf("%d (%d clamped)", m.totals.Applied, m.totals.Clamped)) + "\n")
	s.WriteString(labelStyle.Render("Moved") + valueStyle.Render(humanize.SIWithDigits(float64(m.totals.Moved), 4, "J")) + "\n")

	if m.showHelp {
		s.WriteString(helpStyle.Render("SP:Pause  +/-:Speed  T:Theme  ?:Help  Q:Quit"))
	} else {
		s.WriteString(helpStyle.Foreground(m.theme.Muted).Render("?:Help  Q:Quit"))
	}

	return s.String()
}

// RunLive steps s inside a full-screen terminal program until the user quits.
func RunLive(s *sim.Simulator, cfg sim.Config, title string) error {
	p := tea.NewProgram(NewModel(s, cfg, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

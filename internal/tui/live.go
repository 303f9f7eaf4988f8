// Package tui renders a live terminal view of an evolving electron
// spectrum while the solver advances through cosmic time.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ChenxiSSS/FG21SimPlus/internal/halo"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type spectrumMsg struct {
	t        float64
	spectrum []float64
}

type doneMsg struct{ err error }

type model struct {
	h        *halo.RadioHalo
	time     float64
	spectrum []float64
	steps    int
	done     bool
	err      error

	width  int
	height int
}

func newModel(h *halo.RadioHalo) model {
	return model{h: h, width: 80, height: 24}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spectrumMsg:
		m.time = msg.t
		m.spectrum = msg.spectrum
		m.steps++
	case doneMsg:
		m.done = true
		m.err = msg.err
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("radio halo spectrum evolution") + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("merger age %.2f Gyr -> obs age %.2f Gyr, crossing %.2f Gyr",
		m.h.AgeMerger(), m.h.AgeObs(), m.h.TimeCrossing())) + "\n\n")

	if m.spectrum == nil {
		b.WriteString(dim.Render("waiting for first step..."))
		return b.String()
	}

	b.WriteString(m.chart() + "\n\n")

	phase := green.Render("turbulent acceleration")
	if m.time > m.h.AgeMerger()+m.h.TimeCrossing() {
		phase = yellow.Render("fading")
	}
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %d   %s\n",
		dim.Render("t ="), white.Render(fmt.Sprintf("%.3f Gyr", m.time)),
		dim.Render("tau_acc ="), white.Render(fmt.Sprintf("%.2f Gyr", m.h.TauAcceleration(m.time))),
		dim.Render("steps:"), m.steps,
		phase))

	if m.done {
		if m.err != nil {
			b.WriteString(red.Render(fmt.Sprintf("  failed: %v", m.err)) + "\n")
		} else {
			b.WriteString(green.Render("  done") + "\n")
		}
	}
	b.WriteString(dim.Render("  q to quit"))
	return b.String()
}

// chart plots log10 of the spectrum, clamping empty cells well below
// the populated range so the power law stays readable.
func (m model) chart() string {
	data := make([]float64, len(m.spectrum))
	floor := math.Inf(1)
	for _, v := range m.spectrum {
		if v > 0 {
			lg := math.Log10(v)
			if lg < floor {
				floor = lg
			}
		}
	}
	if math.IsInf(floor, 1) {
		floor = 0
	}
	for i, v := range m.spectrum {
		if v > 0 {
			data[i] = math.Log10(v)
		} else {
			data[i] = floor
		}
	}

	h := m.height - 10
	if h < 5 {
		h = 5
	}
	w := m.width - 14
	if w < 20 {
		w = 20
	}
	return asciigraph.Plot(data,
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Caption("log10 n(gamma) over the energy grid"))
}

// RunLive evolves the halo spectrum in a background goroutine and
// streams every solver step into the terminal view. The final spectrum
// is returned once the program exits.
func RunLive(h *halo.RadioHalo) ([]float64, error) {
	p := tea.NewProgram(newModel(h), tea.WithAltScreen())

	h.SetObserver(func(t float64, u []float64) {
		snap := make([]float64, len(u))
		copy(snap, u)
		p.Send(spectrumMsg{t: t, spectrum: snap})
	})

	type result struct {
		spectrum []float64
		err      error
	}
	resCh := make(chan result, 1)
	go func() {
		spectrum, err := h.ComputeSpectrum()
		resCh <- result{spectrum, err}
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}

	select {
	case res := <-resCh:
		return res.spectrum, res.err
	default:
		// viewer quit mid-run, the spectrum was never finished
		return nil, fmt.Errorf("aborted before the solve completed")
	}
}

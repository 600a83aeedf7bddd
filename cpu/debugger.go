package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"mos6502/mem"
)

type model struct {
	cpu    *CPU
	m      *mem.Memory
	offset uint16 // only for drawing pageTable

	prevPC uint16
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.PC
			m.cpu.Step(m.m)
		}
	}
	return m, nil
}

// renderPage renders a single page as a line. The current PC is highlighted.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.m.Read(start + i)
		if start+i == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Negative(),
		m.cpu.Overflow(),
		true, // unused, always set
		m.cpu.Break(),
		m.cpu.Decimal(),
		m.cpu.IrqDisable(),
		m.cpu.Zero(),
		m.cpu.Carry(),
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	text, _ := Disassemble(m.m, m.cpu.PC)
	return fmt.Sprintf(`
PC: %04x (was %04x)
 next: %s
 A: %02x
 X: %02x
 Y: %02x
 SP: %02x
N V _ B D I Z C
`,
		m.cpu.PC,
		m.prevPC,
		text,
		m.cpu.A,
		m.cpu.X,
		m.cpu.Y,
		m.cpu.SP,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	offsets := []int{
		0, 16, 32, 48, 64,
		int(m.offset),
		int(m.offset + 16*1),
		int(m.offset + 16*2),
		int(m.offset + 16*3),
		int(m.offset + 16*4),
	}
	for _, i := range offsets {
		pages = append(pages, m.renderPage(uint16(i)))
	}
	return strings.Join(pages, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(m.cpu.Snapshot()),
	)
}

// Debug starts an interactive single-step TUI against a CPU and
// memory that are assumed to already be loaded and reset; offset picks
// the five 16-byte rows drawn below the first five rows of page zero.
func Debug(c *CPU, m *mem.Memory, offset uint16) {
	prog, err := tea.NewProgram(model{
		cpu:    c,
		m:      m,
		offset: offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	_ = prog.(model)
}

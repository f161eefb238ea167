package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdp11/internal/cpu"
)

// debugModel is the PDP-11 reworking of the teacher repo's cpu.model:
// the same single-step bubbletea loop (space/j advances one
// instruction, q quits), adapted to octal addresses and this
// machine's register file instead of the 6502's A/X/Y/M.
type debugModel struct {
	cpu    *cpu.Cpu
	prevPC uint16
	err    error
}

func (m debugModel) Init() tea.Cmd { return nil }

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = uint16(m.cpu.Registers.Get(cpu.PC))
			if err := m.cpu.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders one 16-word page of RAM as a line of octal words,
// the current PC highlighted.
func (m debugModel) renderPage(start uint16) string {
	pc := uint16(m.cpu.Registers.Get(cpu.PC))
	s := fmt.Sprintf("%06o | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i*2
		w, err := m.cpu.Ram.ReadWord(addr)
		if err != nil {
			s += " ???? "
			continue
		}
		if addr == pc {
			s += fmt.Sprintf("[%04o] ", uint16(w))
		} else {
			s += fmt.Sprintf(" %04o  ", uint16(w))
		}
	}
	return s
}

func (m debugModel) status() string {
	regs := m.cpu.Registers
	return fmt.Sprintf(`
PC: %06o (was %06o)
SP: %06o
R0: %06o  R1: %06o
R2: %06o  R3: %06o
R4: %06o  R5: %06o
PSW: %s
halted: %v
`,
		uint16(regs.Get(cpu.PC)), m.prevPC,
		uint16(regs.Get(cpu.SP)),
		uint16(regs.Get(cpu.R0)), uint16(regs.Get(cpu.R1)),
		uint16(regs.Get(cpu.R2)), uint16(regs.Get(cpu.R3)),
		uint16(regs.Get(cpu.R4)), uint16(regs.Get(cpu.R5)),
		m.cpu.PSW.String(),
		m.cpu.Halted,
	)
}

func (m debugModel) pageTable() string {
	pc := uint16(m.cpu.Registers.Get(cpu.PC))
	pageStart := pc &^ 0o37 // 16 words = 0o40 bytes per page
	var lines []string
	for _, start := range []uint16{pageStart, pageStart + 0o40, pageStart + 0o100} {
		lines = append(lines, m.renderPage(start))
	}
	return strings.Join(lines, "\n")
}

func (m debugModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("fault: %v\n", m.err)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		"space/j: step   q: quit",
	)
}

// runDebugger starts the interactive single-step inspector over an
// already-constructed, already-reset Cpu.
func runDebugger(c *cpu.Cpu) error {
	result, err := tea.NewProgram(debugModel{cpu: c}).Run()
	if err != nil {
		return err
	}
	if m, ok := result.(debugModel); ok && m.err != nil {
		fmt.Println("fault:", m.err)
	}
	return nil
}

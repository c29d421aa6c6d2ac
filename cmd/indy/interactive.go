package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	indy "github.com/marinocpqd/indy-sdk"
	"github.com/marinocpqd/indy-sdk/status"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	poolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	statePoolList modelState = iota
	stateCreateForm
	stateShowResult
)

type interactiveModel struct {
	client   *indy.Client
	err      error
	result   string
	pools    []string
	inputs   []textinput.Model
	handles  map[string]int32
	selected int
	focusIdx int
	state    modelState
}

type poolsLoadedMsg struct {
	err   error
	pools []string
}

type opDoneMsg struct {
	err    error
	result string
}

func newInteractiveModel(client *indy.Client) *interactiveModel {
	return &interactiveModel{
		client:  client,
		handles: make(map[string]int32),
		state:   statePoolList,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadPools
}

func (m *interactiveModel) loadPools() tea.Msg {
	list, err := m.client.Pool.List()
	if err != nil {
		return poolsLoadedMsg{err: err}
	}
	var entries []struct {
		Pool string `json:"pool"`
	}
	if err := json.Unmarshal([]byte(list), &entries); err != nil {
		return poolsLoadedMsg{err: err}
	}
	pools := make([]string, 0, len(entries))
	for _, e := range entries {
		pools = append(pools, e.Pool)
	}
	return poolsLoadedMsg{pools: pools}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case poolsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.pools = msg.pools
		if m.selected >= len(m.pools) {
			m.selected = 0
		}
		return m, nil

	case opDoneMsg:
		m.err = msg.err
		m.result = msg.result
		m.state = stateShowResult
		return m, m.loadPools

	case tea.KeyMsg:
		switch m.state {
		case statePoolList:
			return m.updatePoolList(msg)
		case stateCreateForm:
			return m.updateCreateForm(msg)
		case stateShowResult:
			m.state = statePoolList
			m.result = ""
			m.err = nil
			return m, nil
		}
	}
	return m, nil
}

func (m *interactiveModel) updatePoolList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.pools)-1 {
			m.selected++
		}
	case "c":
		name := textinput.New()
		name.Placeholder = "pool name"
		name.Focus()
		genesis := textinput.New()
		genesis.Placeholder = "genesis file path"
		m.inputs = []textinput.Model{name, genesis}
		m.focusIdx = 0
		m.state = stateCreateForm
	case "o":
		if name, ok := m.selectedPool(); ok {
			return m, m.openPool(name)
		}
	case "x":
		if name, ok := m.selectedPool(); ok {
			return m, m.closePool(name)
		}
	case "r":
		if name, ok := m.selectedPool(); ok {
			return m, m.refreshPool(name)
		}
	case "d":
		if name, ok := m.selectedPool(); ok {
			return m, m.deletePool(name)
		}
	}
	return m, nil
}

func (m *interactiveModel) updateCreateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = statePoolList
		return m, nil
	case "tab", "shift+tab":
		m.inputs[m.focusIdx].Blur()
		m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
		m.inputs[m.focusIdx].Focus()
		return m, nil
	case "enter":
		name := m.inputs[0].Value()
		genesis := m.inputs[1].Value()
		m.state = statePoolList
		return m, m.createPool(name, genesis)
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

func (m *interactiveModel) selectedPool() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.pools) {
		return "", false
	}
	return m.pools[m.selected], true
}

func (m *interactiveModel) createPool(name, genesis string) tea.Cmd {
	return func() tea.Msg {
		cfg, _ := json.Marshal(map[string]string{"genesis_txn": genesis})
		if err := m.client.Pool.CreateLedgerConfig(name, string(cfg)); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{result: fmt.Sprintf("created pool config %q", name)}
	}
}

func (m *interactiveModel) openPool(name string) tea.Cmd {
	return func() tea.Msg {
		handle, err := m.client.Pool.OpenLedger(name, "")
		if err != nil {
			return opDoneMsg{err: err}
		}
		m.handles[name] = handle
		return opDoneMsg{result: fmt.Sprintf("opened %q with handle %d", name, handle)}
	}
}

func (m *interactiveModel) refreshPool(name string) tea.Cmd {
	return func() tea.Msg {
		handle, ok := m.handles[name]
		if !ok {
			return opDoneMsg{err: status.Errorf("refresh", status.NotFound, "pool %q is not open", name)}
		}
		if err := m.client.Pool.Refresh(handle); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{result: fmt.Sprintf("refreshed %q", name)}
	}
}

func (m *interactiveModel) closePool(name string) tea.Cmd {
	return func() tea.Msg {
		handle, ok := m.handles[name]
		if !ok {
			return opDoneMsg{err: status.Errorf("close", status.NotFound, "pool %q is not open", name)}
		}
		delete(m.handles, name)
		if err := m.client.Pool.Close(handle); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{result: fmt.Sprintf("closed %q", name)}
	}
}

func (m *interactiveModel) deletePool(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Pool.Delete(name); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{result: fmt.Sprintf("deleted pool config %q", name)}
	}
}

func (m *interactiveModel) View() string {
	s := titleStyle.Render("indy pools") + "\n\n"

	switch m.state {
	case stateCreateForm:
		s += "Create pool config\n\n"
		for i := range m.inputs {
			s += m.inputs[i].View() + "\n"
		}
		s += "\n" + helpStyle.Render("enter: create • tab: next field • esc: cancel")
		return s

	case stateShowResult:
		if m.err != nil {
			s += errorStyle.Render("error: "+m.err.Error()) + "\n"
		} else {
			s += resultStyle.Render(m.result) + "\n"
		}
		s += "\n" + helpStyle.Render("any key: back")
		return s
	}

	if len(m.pools) == 0 {
		s += helpStyle.Render("no pool configs") + "\n"
	}
	for i, name := range m.pools {
		line := name
		if _, open := m.handles[name]; open {
			line += " (open)"
		}
		if i == m.selected {
			s += selectedStyle.Render("> "+line) + "\n"
		} else {
			s += poolStyle.Render("  "+line) + "\n"
		}
	}
	if m.err != nil {
		s += "\n" + errorStyle.Render("error: "+m.err.Error())
	}
	s += "\n" + helpStyle.Render("c: create • o: open • r: refresh • x: close • d: delete • q: quit")
	return s
}

func runInteractive(client *indy.Client) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	_, err := tea.NewProgram(newInteractiveModel(client)).Run()
	return err
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Grupp-8-TSEA56-2022/control-center/settings"
)

type mainState int

const (
	showMenu mainState = iota
	showWatch
	showSettings
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type TickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Every(settings.STATUS_PUSH_DELAY, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type uiModel struct {
	list     list.Model
	state    mainState
	watch    watchModel
	settings settingsModel
	client   *client
}

type item struct {
	title, desc string
	state       mainState
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func initialModel(addr string) uiModel {
	items := []list.Item{
		item{title: "Watch", desc: "Watch the live status of the drive loop", state: showWatch},
		item{title: "Settings", desc: "Modify the persisted control settings", state: showSettings},
	}

	listDelegate := list.NewDefaultDelegate()
	m := uiModel{list: list.New(items, listDelegate, 0, 0), settings: getSettingsModel(), client: newClient(addr)}
	m.list.Title = "Control Center"
	return m
}

func (m uiModel) Init() tea.Cmd {
	return tickEvery()
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc && m.state == showWatch {
			m.state = showMenu
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == showMenu && m.list.FilterState() != list.Filtering {
			it := m.list.SelectedItem().(item)
			m.state = it.state
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.settings, _ = m.settings.Update(msg, &m)
	case TickMsg:
		if m.state == showWatch {
			m.watch, _ = m.watch.Update(msg, &m)
		}
		return m, tickEvery()
	}

	var cmd tea.Cmd
	switch m.state {
	case showSettings:
		m.settings, cmd = m.settings.Update(msg, &m)
	case showWatch:
		m.watch, cmd = m.watch.Update(msg, &m)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m uiModel) View() string {
	switch m.state {
	case showWatch:
		return m.watch.View()
	case showSettings:
		return m.settings.View()
	}
	return docStyle.Render(m.list.View())
}

func interactive(addr string) {
	p := tea.NewProgram(initialModel(addr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

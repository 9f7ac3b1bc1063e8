package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	ms "github.com/Grupp-8-TSEA56-2022/control-center/settings"
)

type SettingType int

const (
	String SettingType = iota
	Int
)

type settingsState int

const (
	showSettingsMenu settingsState = iota
	settingsExit
	settingsInput
	saveSettings
)

type settingsItem struct {
	title, desc string
	state       settingsState
	Type        SettingType
	get         func(*ms.ControlSettings) string
	set         func(*ms.ControlSettings, string) error
}

func (i settingsItem) Title() string       { return i.title }
func (i settingsItem) Description() string { return i.desc }
func (i settingsItem) FilterValue() string { return i.title }

type settingsModel struct {
	list         list.Model
	state        settingsState
	textInput    textinput.Model
	selectedItem settingsItem
	prompt       string
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg, mm *uiModel) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && m.state == showSettingsMenu {
			it, ok := m.list.SelectedItem().(settingsItem)
			if !ok {
				return m, nil
			}
			m.selectedItem = it
			m.state = it.state
			switch m.state {
			case settingsExit:
				m.state = showSettingsMenu
				mm.state = showMenu
			case settingsInput:
				m.prompt = fmt.Sprintf("%s (now %s)", it.Title(), it.get(&ms.Settings))
				m.textInput.SetValue("")
				m.textInput.Focus()
			case saveSettings:
				m.state = showSettingsMenu
				mm.state = showMenu
				ms.Settings.Save()
			}
			return m, nil
		}
		if m.state == settingsInput {
			switch msg.Type {
			case tea.KeyEsc:
				m.state = showSettingsMenu
				return m, nil
			case tea.KeyEnter:
				result := m.textInput.Value()
				if err := m.selectedItem.set(&ms.Settings, result); err != nil {
					m.prompt = fmt.Sprintf("%s (invalid value %q)", m.selectedItem.Title(), result)
					m.textInput.SetValue("")
					return m, nil
				}
				m.state = showSettingsMenu
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	if m.state == settingsInput {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m settingsModel) View() string {
	switch m.state {
	case settingsInput:
		return docStyle.Render(fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			m.prompt,
			m.textInput.View(),
			"(enter to apply, esc to cancel)",
		) + "\n")
	default:
		return docStyle.Render(m.list.View())
	}
}

func intItem(title string, desc string, field func(*ms.ControlSettings) *int) settingsItem {
	return settingsItem{
		title: title,
		desc:  desc,
		state: settingsInput,
		Type:  Int,
		get: func(s *ms.ControlSettings) string {
			return strconv.Itoa(*field(s))
		},
		set: func(s *ms.ControlSettings, value string) error {
			val, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			*field(s) = val
			return nil
		},
	}
}

func stringItem(title string, desc string, field func(*ms.ControlSettings) *string) settingsItem {
	return settingsItem{
		title: title,
		desc:  desc,
		state: settingsInput,
		Type:  String,
		get: func(s *ms.ControlSettings) string {
			return *field(s)
		},
		set: func(s *ms.ControlSettings, value string) error {
			*field(s) = value
			return nil
		},
	}
}

func getSettingsModel() settingsModel {
	ms.Settings.Load()

	items := []list.Item{
		intItem(
			"Default Speed",
			"The speed reference while following a road",
			func(s *ms.ControlSettings) *int { return &s.DefaultSpeed },
		),
		intItem(
			"Intersection Speed",
			"The speed reference while passing through an intersection",
			func(s *ms.ControlSettings) *int { return &s.IntersectionSpeed },
		),
		intItem(
			"Blocked Distance",
			"Obstacle distances below this stop the vehicle",
			func(s *ms.ControlSettings) *int { return &s.BlockedDistance },
		),
		intItem(
			"Stop Line Distance",
			"Stop line distances at or below this count as proximate",
			func(s *ms.ControlSettings) *int { return &s.StopLineDistance },
		),
		intItem(
			"At Line Consecutive",
			"Proximate readings in a row required to report a stop line",
			func(s *ms.ControlSettings) *int { return &s.AtLineConsecutive },
		),
		intItem(
			"At Line Hold",
			"Calls a stop line report is held after the trigger run",
			func(s *ms.ControlSettings) *int { return &s.AtLineHold },
		),
		intItem(
			"Expected Angle Range",
			"Line angles outside this range are treated as bad frames",
			func(s *ms.ControlSettings) *int { return &s.ExpectedAngleRange },
		),
		intItem(
			"Status Code Threshold",
			"Clean sensor rounds in a row before nominal regulation",
			func(s *ms.ControlSettings) *int { return &s.StatusCodeThreshold },
		),
		stringItem(
			"Log Level",
			"Modify how verbose logging will be for the control-center",
			func(s *ms.ControlSettings) *string { return &s.LogLevel },
		),
		stringItem(
			"Map Path",
			"The track map loaded at startup",
			func(s *ms.ControlSettings) *string { return &s.MapPath },
		),
		stringItem(
			"Listen Address",
			"The address the remote API listens on after a restart",
			func(s *ms.ControlSettings) *string { return &s.ListenAddr },
		),
		settingsItem{
			title: "Save Settings",
			desc:  "Persists any updates to the settings across reboots",
			state: saveSettings,
		},
		settingsItem{
			title: "Return to Main Menu",
			desc:  "Exit settings configuration and return to the initial actions menu",
			state: settingsExit,
		},
	}

	listDelegate := list.NewDefaultDelegate()
	m := settingsModel{list: list.New(items, listDelegate, 0, 0), textInput: textinput.New()}
	m.list.Title = "Control Settings"
	return m
}

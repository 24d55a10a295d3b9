package tui

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/tui/components"
	"nathanbeddoewebdev/pokeshop/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type configSavedMsg struct {
	key   string
	value string
}

type configSaveErrorMsg struct {
	key string
	err error
}

// configViewModel lists every config key with its stored and effective
// value. Enumerated keys are cycled in place, free-form keys open an
// inline editor.
type configViewModel struct {
	cfg  *config.Config
	path string
	keys []config.KeySpec

	cursor  int
	editing bool
	editor  textinput.Model

	width  int
	height int

	status  string
	isError bool
}

// RunConfigView starts the interactive config editor.
func RunConfigView() error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p := tea.NewProgram(configViewModel{cfg: cfg, path: path, keys: config.Keys}, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m configViewModel) Init() tea.Cmd { return nil }

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateBrowse(msg)

	case configSavedMsg:
		m.editing = false
		m.isError = false
		if msg.value == "" {
			m.status = msg.key + " reset to default"
		} else {
			m.status = fmt.Sprintf("%s set to %q", msg.key, msg.value)
		}
		return m, nil

	case configSaveErrorMsg:
		m.status = fmt.Sprintf("saving %s: %v", msg.key, msg.err)
		m.isError = true
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m configViewModel) selected() config.KeySpec {
	return m.keys[m.cursor]
}

func (m configViewModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.keys) == 0 {
		if s := msg.String(); s == "ctrl+c" || s == "q" || s == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	spec := m.selected()
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.keys)-1)
	case "left", "h":
		if len(spec.Choices) > 0 {
			return m.commit(spec, cycle(spec.Choices, spec.Effective(m.cfg), -1))
		}
	case "right", "l", " ":
		if len(spec.Choices) > 0 {
			return m.commit(spec, cycle(spec.Choices, spec.Effective(m.cfg), 1))
		}
	case "d", "delete":
		return m.commit(spec, "")
	case "enter", "e":
		if len(spec.Choices) > 0 {
			return m.commit(spec, cycle(spec.Choices, spec.Effective(m.cfg), 1))
		}
		m.editor = newKeyEditor(spec, m.cfg)
		m.editing = true
		m.status = ""
		return m, textinput.Blink
	}
	return m, nil
}

func (m configViewModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.status = ""
		return m, nil
	case "enter":
		return m.commit(m.selected(), m.editor.Value())
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// commit normalizes raw, applies it and schedules a save. An empty raw
// value unsets the key.
func (m configViewModel) commit(spec config.KeySpec, raw string) (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(raw)
	if value != "" {
		var err error
		if value, err = spec.Normalize(value); err != nil {
			m.status = err.Error()
			m.isError = true
			return m, nil
		}
	}
	spec.Set(m.cfg, value)

	cfg, path := m.cfg, m.path
	return m, func() tea.Msg {
		if err := cfg.SaveTo(path); err != nil {
			return configSaveErrorMsg{key: spec.Name, err: err}
		}
		return configSavedMsg{key: spec.Name, value: value}
	}
}

func newKeyEditor(spec config.KeySpec, cfg *config.Config) textinput.Model {
	ti := textinput.New()
	ti.SetValue(spec.Get(cfg))
	ti.Placeholder = spec.Effective(cfg)
	ti.Prompt = ""
	ti.Width = 36
	ti.Focus()
	return ti
}

// cycle returns the choice step places away from current, wrapping.
// An unknown current value starts from the first choice.
func cycle(choices []string, current string, step int) string {
	i := slices.Index(choices, current)
	if i < 0 {
		return choices[0]
	}
	n := len(choices)
	return choices[((i+step)%n+n)%n]
}

func (m configViewModel) bindings() []components.KeyBinding {
	if m.editing {
		return []components.KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	edit := components.KeyBinding{Key: "e", Desc: "edit"}
	if len(m.keys) > 0 && len(m.selected().Choices) > 0 {
		edit = components.KeyBinding{Key: "h/l", Desc: "change"}
	}
	return []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		edit,
		{Key: "d", Desc: "reset"},
		{Key: "q", Desc: "quit"},
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "config", m.path)
	footer := components.Footer(m.width, m.bindings())
	status := components.StatusBar(m.width, m.status, m.isError)

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if status != "" {
		bodyH -= lipgloss.Height(status)
	}
	sections := []string{header, m.renderBody(max(bodyH, 1))}
	if status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

var configColumns = []struct {
	title string
	width int
}{
	{"KEY", 16},
	{"STORED", 28},
	{"IN EFFECT", 28},
}

func (m configViewModel) renderBody(height int) string {
	if len(m.keys) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No configuration keys defined."))
	}

	// Environment overrides only show in the effective column; they are
	// never written back.
	withEnv := *m.cfg
	envErr := withEnv.ApplyEnv()

	cells := make([]string, len(configColumns))
	for i, col := range configColumns {
		cells[i] = styles.TableHeader.Width(col.width).Render(col.title)
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, cells...)}

	for i, spec := range m.keys {
		stored := spec.Get(m.cfg)
		if m.editing && i == m.cursor {
			stored = m.editor.View()
		} else if stored == "" {
			stored = "-"
		}
		effective := spec.Effective(m.cfg)
		if envErr == nil {
			if overridden := spec.Effective(&withEnv); overridden != effective {
				effective = overridden + " (env)"
			}
		}

		style := styles.TableCell
		if i == m.cursor {
			style = styles.TableSelectedRow
		}
		row := []string{spec.Name, stored, effective}
		for j, col := range configColumns {
			cells[j] = style.Width(col.width).MaxWidth(col.width).Render(row[j])
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	spec := m.selected()
	detail := []string{"", styles.MutedText.Italic(true).Render(spec.Description)}
	if len(spec.Choices) > 0 {
		detail = append(detail, renderChoices(spec.Choices, spec.Effective(m.cfg)))
	}
	if envErr != nil {
		detail = append(detail, styles.ErrorText.Render(envErr.Error()))
	}
	lines = append(lines, detail...)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Configuration"), "",
		styles.Card.Render(strings.Join(lines, "\n")),
	)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderChoices(choices []string, current string) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		if c == current {
			parts[i] = styles.AccentText.Render("[" + c + "]")
		} else {
			parts[i] = styles.MutedText.Render(c)
		}
	}
	return strings.Join(parts, styles.KeySepStyle.Render(" · "))
}

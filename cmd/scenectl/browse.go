package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/container"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type assetEntry struct {
	kind    string
	name    string
	texture *container.Texture
	scene   *container.Scene
}

type browserState int

const (
	stateList browserState = iota
	stateDetail
)

type browserModel struct {
	filename string
	assets   []assetEntry
	visible  []int
	filter   textinput.Model
	selected int
	state    browserState
}

func newBrowserModel(filename string, f *container.File) *browserModel {
	m := &browserModel{filename: filename, state: stateList}
	for i := range f.Textures {
		if t := &f.Textures[i]; !t.Skipped() {
			m.assets = append(m.assets, assetEntry{kind: "texture", name: t.Name, texture: t})
		}
	}
	for i := range f.Scenes {
		if s := &f.Scenes[i]; !s.Skipped() {
			m.assets = append(m.assets, assetEntry{kind: "scene", name: s.Name, scene: s})
		}
	}
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "name"
	ti.Width = 40
	ti.Focus()
	m.filter = ti
	m.applyFilter()
	return m
}

func (m *browserModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, a := range m.assets {
		if q == "" || strings.Contains(strings.ToLower(a.name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateList && len(m.visible) > 0 {
				m.state = stateDetail
			}
			return m, nil

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
				return m, nil
			}
			return m, tea.Quit
		}
	}

	if m.state != stateList {
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Scene Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateList:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for i, idx := range m.visible {
			a := m.assets[idx]
			line := fmt.Sprintf("%s %s", nameStyle.Render(a.name), kindStyle.Render(a.kind))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + a.name + " " + a.kind))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matching assets"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter details • esc quit"))

	case stateDetail:
		b.WriteString(assetDetail(m.assets[m.visible[m.selected]]))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • ctrl+c quit"))
	}

	return b.String()
}

func assetDetail(a assetEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", nameStyle.Render(a.name), kindStyle.Render(a.kind))
	if t := a.texture; t != nil {
		fmt.Fprintf(&b, "type     %s\n", abi.AttributeType(t.Type))
		fmt.Fprintf(&b, "object   %s\n", objectSummary(&t.Object))
		return b.String()
	}

	s := a.scene
	fmt.Fprintf(&b, "object   %s\n", objectSummary(&s.Object))
	fmt.Fprintf(&b, "instance %d bytes\n\n", s.InstanceSize)
	if len(s.Attributes) > 0 {
		b.WriteString("attributes\n")
		for _, at := range s.Attributes {
			fmt.Fprintf(&b, "  %-24s %s\n", at.Name, kindStyle.Render(abi.AttributeType(at.Type).String()))
		}
	}
	if len(s.AttributeSets) > 0 {
		b.WriteString("attribute sets\n")
		for _, set := range s.AttributeSets {
			fmt.Fprintf(&b, "  %-24s %d tracks, %d clips\n", set.Name, set.NumTracks, set.NumClips)
		}
	}
	if len(s.Objects) > 0 {
		b.WriteString("objects\n")
		for _, o := range s.Objects {
			fmt.Fprintf(&b, "  %s\n", o.Name)
		}
	}
	return b.String()
}

func runBrowser(filename string, f *container.File) error {
	p := tea.NewProgram(newBrowserModel(filename, f), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

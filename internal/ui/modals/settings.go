package modals

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

const (
	optionNotifications   = "notifications"
	optionSidebarExpanded = "sidebar-expanded"
)

// MaxReplyDelay bounds the reply delay field.
const MaxReplyDelay = time.Minute

// SettingsValues is what the settings modal edits.
type SettingsValues struct {
	Theme                string
	NotificationsEnabled bool
	SidebarExpanded      bool
	ReplyDelay           time.Duration
}

// SettingsState is the huh-backed settings modal.
type SettingsState struct {
	original SettingsValues

	// Bound form values
	selectedTheme string
	options       []string
	replyDelay    string

	form *huh.Form
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidth }

// SetSize updates the form width to the space the modal is given.
func (s *SettingsState) SetSize(width, height int) {
	s.form.WithWidth(max(width-8, 20))
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Values returns the edited settings. An invalid delay keeps the original.
func (s *SettingsState) Values() SettingsValues {
	v := SettingsValues{
		Theme:                s.selectedTheme,
		NotificationsEnabled: slices.Contains(s.options, optionNotifications),
		SidebarExpanded:      slices.Contains(s.options, optionSidebarExpanded),
		ReplyDelay:           s.original.ReplyDelay,
	}
	if d, err := parseReplyDelay(s.replyDelay); err == nil {
		v.ReplyDelay = d
	}
	return v
}

// Validate reports a problem with the current field values.
func (s *SettingsState) Validate() error {
	_, err := parseReplyDelay(s.replyDelay)
	return err
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.original.Theme
}

func parseReplyDelay(text string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("reply delay must be a duration like 1s or 500ms")
	}
	if d <= 0 || d > MaxReplyDelay {
		return 0, fmt.Errorf("reply delay must be positive and at most %s", MaxReplyDelay)
	}
	return d, nil
}

// NewSettingsState creates the settings modal for the current values.
func NewSettingsState(themes []ThemeOption, current SettingsValues) *SettingsState {
	s := &SettingsState{
		original:      current,
		selectedTheme: current.Theme,
		replyDelay:    current.ReplyDelay.String(),
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i, t := range themes {
		themeOptions[i] = huh.NewOption(t.DisplayName, t.Key)
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Notify when a reply arrives in the background", optionNotifications).
			Selected(current.NotificationsEnabled),
		huh.NewOption("Start with the sidebar expanded", optionSidebarExpanded).
			Selected(current.SidebarExpanded),
	}
	if current.NotificationsEnabled {
		s.options = append(s.options, optionNotifications)
	}
	if current.SidebarExpanded {
		s.options = append(s.options, optionSidebarExpanded)
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.options),
		huh.NewInput().
			Title("Reply delay").
			Description("How long the bot waits before answering").
			Placeholder("1s").
			CharLimit(16).
			Validate(func(v string) error {
				_, err := parseReplyDelay(v)
				return err
			}).
			Value(&s.replyDelay),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 8).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

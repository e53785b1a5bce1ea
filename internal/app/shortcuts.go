package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/noro/internal/keys"
	"github.com/zhubert/noro/internal/ui"
	"github.com/zhubert/noro/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string // The key binding (e.g., "c", "ctrl+n")
	DisplayKey  string // Display name in help (e.g., "Ctrl+N"); defaults to Key
	Description string
	Category    string // Section for help modal grouping
	// OutsideComposer shortcuts are plain keys that the composer must be
	// able to type.
	OutsideComposer bool
	// RequiresSelection shortcuts act on the selected transcript entry.
	RequiresSelection bool
	Handler           func(m *Model) (tea.Model, tea.Cmd)
	Condition         func(m *Model) bool // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Navigation"
	CategoryChat       = "Chat"
	CategoryMessages   = "Messages"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryChat,
	CategoryMessages,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of keyboard shortcuts. Entries
// show up in the help modal and can be triggered from it.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Next pane",
		Category:    CategoryNavigation,
		Handler:     shortcutNextPane,
	},
	{
		Key:         keys.ShiftTab,
		DisplayKey:  "Shift+Tab",
		Description: "Previous pane",
		Category:    CategoryNavigation,
		Handler:     shortcutPrevPane,
	},
	{
		Key:         keys.CtrlB,
		DisplayKey:  "Ctrl+B",
		Description: "Expand or collapse the sidebar",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleSidebar,
		Condition:   func(m *Model) bool { return m.session.Sidebar().Visible },
	},

	// Chat
	{
		Key:         keys.CtrlN,
		DisplayKey:  "Ctrl+N",
		Description: "Start a new chat",
		Category:    CategoryChat,
		Handler:     shortcutNewChat,
	},

	// Messages
	{
		Key:               "c",
		Description:       "Copy selected message",
		Category:          CategoryMessages,
		RequiresSelection: true,
		Handler:           shortcutCopy,
	},
	{
		Key:               "e",
		Description:       "Edit selected message",
		Category:          CategoryMessages,
		RequiresSelection: true,
		Handler:           shortcutEdit,
		Condition: func(m *Model) bool {
			e, ok := m.chat.SelectedEntry()
			return ok && e.IsUser()
		},
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:         keys.CtrlO,
		DisplayKey:  "Ctrl+O",
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:             "q",
		Description:     "Quit",
		Category:        CategoryGeneral,
		OutsideComposer: true,
		Handler:         shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:             "?",
	Description:     "Show this help",
	Category:        CategoryGeneral,
	OutsideComposer: true,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Select message or sidebar item", Category: CategoryNavigation},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll the transcript", Category: CategoryNavigation},
	{DisplayKey: "←/→", Description: "Choose a suggestion", Category: CategoryChat},
	{DisplayKey: "Enter", Description: "Send message / Activate", Category: CategoryChat},
	{DisplayKey: "Ctrl+C", Description: "Quit", Category: CategoryGeneral},
}

// hasSelection reports whether the transcript pane has a selected entry.
func (m *Model) hasSelection() bool {
	if m.focus != ui.PaneTranscript || !m.session.ChatActive() {
		return false
	}
	_, ok := m.chat.SelectedEntry()
	return ok
}

// isShortcutApplicable checks if a shortcut's guards pass in the current
// state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.OutsideComposer && m.focus == ui.PaneComposer {
		return false
	}
	if s.RequiresSelection && !m.hasSelection() {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key {
		if !m.isShortcutApplicable(helpShortcut) {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			m.log.Debug("shortcut guard failed", "key", key)
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections builds the help modal from the shortcuts that
// apply right now, plus the display-only hints.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	for _, s := range registry {
		if !m.isShortcutApplicable(s) {
			continue
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey(s),
			Desc: s.Description,
		})
	}
	for _, s := range displayOnly {
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey(s),
			Desc: s.Description,
		})
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

func displayKey(s Shortcut) string {
	if s.DisplayKey != "" {
		return s.DisplayKey
	}
	return s.Key
}

// keyForDisplay maps a help row back to the key it runs. Display-only rows
// map to "".
func keyForDisplay(display string) string {
	for _, s := range append(ShortcutRegistry, helpShortcut) {
		if displayKey(s) == display {
			return s.Key
		}
	}
	return ""
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutNextPane(m *Model) (tea.Model, tea.Cmd) {
	m.cycleFocus(1)
	return m, nil
}

func shortcutPrevPane(m *Model) (tea.Model, tea.Cmd) {
	m.cycleFocus(-1)
	return m, nil
}

func shortcutToggleSidebar(m *Model) (tea.Model, tea.Cmd) {
	return m.handleSidebarAction(ui.SidebarItemToggle)
}

func shortcutNewChat(m *Model) (tea.Model, tea.Cmd) {
	return m.newChat()
}

func shortcutCopy(m *Model) (tea.Model, tea.Cmd) {
	return m.copySelected()
}

func shortcutEdit(m *Model) (tea.Model, tea.Cmd) {
	return m.editSelected()
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	allShortcuts := append(ShortcutRegistry, helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpState(sections))
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewSettingsState(ui.ThemeOptions(), modals.SettingsValues{
		Theme:                string(ui.CurrentThemeName()),
		NotificationsEnabled: m.config.GetNotificationsEnabled(),
		SidebarExpanded:      m.config.GetSidebarExpanded(),
		ReplyDelay:           m.session.ReplyDelay(),
	}))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

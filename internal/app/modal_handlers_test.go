package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/noro/internal/config"
	"github.com/zhubert/noro/internal/keys"
	"github.com/zhubert/noro/internal/ui"
	"github.com/zhubert/noro/internal/ui/modals"
)

func TestHelpModal_OpenClose(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 120, 40)
	m.setFocus(ui.PaneTranscript)

	m.Update(keyPress("?"))
	if _, ok := m.modal.State.(*modals.HelpState); !ok {
		t.Fatalf("modal state = %T, want *modals.HelpState", m.modal.State)
	}
	if !strings.Contains(plainView(m), "Keyboard Shortcuts") {
		t.Error("help modal should be rendered")
	}

	m.Update(keyPress(keys.Escape))
	if m.modal.IsVisible() {
		t.Error("esc should close help")
	}
}

func TestHelpModal_KeysDoNotLeak(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 120, 40)
	m.setFocus(ui.PaneTranscript)
	m.Update(keyPress("?"))

	m.Update(keyPress(keys.CtrlN))
	m.Update(keyPress(keys.Tab))
	if m.Focus() != ui.PaneTranscript {
		t.Error("keys should go to the modal while it is open")
	}
}

func TestHelpModal_TriggerShortcut(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 120, 40)
	send(t, m, "hi")
	m.setFocus(ui.PaneTranscript)

	m.Update(modals.HelpShortcutTriggeredMsg{Key: "Ctrl+N"})
	if m.Session().Len() != 0 {
		t.Error("triggering Ctrl+N from help should start a new chat")
	}
}

func TestHelpModal_DisplayOnlyIgnored(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 120, 40)
	send(t, m, "hi")

	m.Update(modals.HelpShortcutTriggeredMsg{Key: "PgUp/PgDn"})
	if m.Session().Len() != 1 || m.modal.IsVisible() {
		t.Error("display-only rows should do nothing")
	}
}

func TestHelpModal_EnterTriggersSelection(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 120, 40)
	m.setFocus(ui.PaneTranscript)
	m.Update(keyPress("?"))

	_, cmd := m.Update(keyPress(keys.Enter))
	if m.modal.IsVisible() {
		t.Error("enter should close help")
	}
	if cmd == nil {
		t.Fatal("enter on a shortcut should return a command")
	}
	msg, ok := cmd().(modals.HelpShortcutTriggeredMsg)
	if !ok || msg.Key != "Tab" {
		t.Errorf("got %#v, want the first shortcut", cmd())
	}
}

func TestKeyForDisplay(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"Tab", keys.Tab},
		{"Shift+Tab", keys.ShiftTab},
		{"Ctrl+N", keys.CtrlN},
		{"c", "c"},
		{"?", "?"},
		{"↑/↓ or j/k", ""},
		{"Enter", ""},
	}
	for _, tt := range tests {
		if got := keyForDisplay(tt.display); got != tt.want {
			t.Errorf("keyForDisplay(%q) = %q, want %q", tt.display, got, tt.want)
		}
	}
}

func TestHelpSections(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 120, 40)
	send(t, m, "hi")
	m.setFocus(ui.PaneTranscript)

	all := append(ShortcutRegistry, helpShortcut)
	sections := m.getApplicableHelpSections(all, DisplayOnlyShortcuts)
	if len(sections) != len(categoryOrder) {
		t.Fatalf("got %d sections, want %d", len(sections), len(categoryOrder))
	}
	for i, s := range sections {
		if s.Title != categoryOrder[i] {
			t.Errorf("section %d = %q, want %q", i, s.Title, categoryOrder[i])
		}
	}

	var found bool
	for _, sc := range sections[2].Shortcuts {
		if sc.Key == "e" {
			found = true
		}
	}
	if !found {
		t.Error("edit should be listed while a user entry is selected")
	}

	m.setFocus(ui.PaneComposer)
	sections = m.getApplicableHelpSections(all, nil)
	for _, s := range sections {
		for _, sc := range s.Shortcuts {
			if sc.Key == "q" || sc.Key == "c" {
				t.Errorf("%q should not be listed while typing", sc.Key)
			}
		}
	}
}

func TestSettingsModal_Cancel(t *testing.T) {
	cfg := testConfig(t)
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.Update(keyPress(keys.CtrlO))
	if _, ok := m.modal.State.(*modals.SettingsState); !ok {
		t.Fatalf("modal state = %T, want *modals.SettingsState", m.modal.State)
	}

	m.Update(keyPress(keys.Escape))
	if m.modal.IsVisible() {
		t.Error("esc should close settings")
	}
	if _, err := os.Stat(cfg.FilePath()); !os.IsNotExist(err) {
		t.Error("cancel should not write the config")
	}
}

func TestSettingsModal_Save(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetNotificationsEnabled(true)
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.Update(keyPress(keys.CtrlO))
	_, cmd := m.Update(keyPress(keys.Enter))

	if m.modal.IsVisible() {
		t.Error("enter should close settings")
	}
	if cmd != nil {
		t.Error("a successful save should not flash an error")
	}

	loaded, err := config.LoadFrom(cfg.FilePath())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("saved config should keep notifications on")
	}
	if loaded.GetReplyDelay() != m.Session().ReplyDelay() {
		t.Errorf("saved delay = %v, session delay = %v", loaded.GetReplyDelay(), m.Session().ReplyDelay())
	}
}

func TestSaveConfigOrFlash_Error(t *testing.T) {
	// A regular file where the config directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New(filepath.Join(blocker, "config.json"))
	m, _ := testModelWithSize(t, cfg, 120, 40)

	if cmd := m.saveConfigOrFlash(); cmd == nil {
		t.Error("expected an error flash on failed save")
	}
	if !strings.Contains(plainView(m), "Failed to save settings") {
		t.Error("footer should show the save error")
	}
}

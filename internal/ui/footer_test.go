package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()

	if len(footer.bindings) == 0 {
		t.Error("Expected default bindings to be set")
	}
	if footer.flashMessage != nil {
		t.Error("Expected no flash message initially")
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("Copied to clipboard!", FlashSuccess)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Copied to clipboard!" || footer.flashMessage.Type != FlashSuccess {
		t.Errorf("flash = %+v", footer.flashMessage)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("Duration = %v, want %v", footer.flashMessage.Duration, DefaultFlashDuration)
	}
}

func TestFooter_SetFlashWithDuration(t *testing.T) {
	footer := NewFooter()
	footer.SetFlashWithDuration("Custom", FlashInfo, 10*time.Second)

	if footer.flashMessage.Duration != 10*time.Second {
		t.Errorf("Duration = %v, want 10s", footer.flashMessage.Duration)
	}
}

func TestFooter_ClearFlash(t *testing.T) {
	footer := NewFooter()
	if footer.HasFlash() {
		t.Error("HasFlash() should be false initially")
	}

	footer.SetFlash("Test", FlashInfo)
	if !footer.HasFlash() {
		t.Error("HasFlash() should be true after SetFlash")
	}

	footer.ClearFlash()
	if footer.HasFlash() {
		t.Error("HasFlash() should be false after ClearFlash")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("Not expired", FlashInfo)

	if footer.ClearIfExpired() {
		t.Error("Should not clear a fresh message")
	}

	footer.flashMessage = &FlashMessage{
		Text:      "Expired",
		Type:      FlashInfo,
		CreatedAt: time.Now().Add(-10 * time.Second),
		Duration:  5 * time.Second,
	}
	if !footer.ClearIfExpired() {
		t.Error("Should clear an expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be cleared")
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name         string
		flashType    FlashType
		expectedIcon string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			view := ansi.Strip(footer.View())
			if !strings.Contains(view, tt.expectedIcon+" Test message") {
				t.Errorf("view %q missing %q", view, tt.expectedIcon+" Test message")
			}
			if strings.Contains(view, "switch pane") {
				t.Error("flash should replace the key hints")
			}
		})
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}

func TestFooter_Bindings(t *testing.T) {
	tests := []struct {
		name    string
		ctx     FooterContext
		want    []string
		notWant []string
	}{
		{
			name:    "composer",
			ctx:     FooterContext{Focus: PaneComposer},
			want:    []string{"send", "new chat", "sidebar"},
			notWant: []string{"copy", "edit"},
		},
		{
			name:    "landing",
			ctx:     FooterContext{Focus: PaneTranscript},
			want:    []string{"choose", "start"},
			notWant: []string{"copy", "send"},
		},
		{
			name:    "transcript with bot entry selected",
			ctx:     FooterContext{Focus: PaneTranscript, ChatActive: true, HasEntries: true},
			want:    []string{"select", "copy", "scroll"},
			notWant: []string{"edit"},
		},
		{
			name: "transcript with user entry selected",
			ctx:  FooterContext{Focus: PaneTranscript, ChatActive: true, HasEntries: true, CanEdit: true},
			want: []string{"copy", "edit"},
		},
		{
			name:    "sidebar",
			ctx:     FooterContext{Focus: PaneSidebar},
			want:    []string{"new chat", "settings", "help", "quit"},
			notWant: []string{"send"},
		},
		{
			name:    "modal",
			ctx:     FooterContext{Focus: PaneComposer, ModalVisible: true},
			want:    []string{"confirm", "close"},
			notWant: []string{"send"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(160)
			footer.SetContext(tt.ctx)
			view := ansi.Strip(footer.View())

			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("view missing %q: %s", w, view)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(view, nw) {
					t.Errorf("view should not contain %q: %s", nw, view)
				}
			}
		})
	}
}

func TestPaneString(t *testing.T) {
	if PaneSidebar.String() != "sidebar" || PaneTranscript.String() != "transcript" || PaneComposer.String() != "composer" {
		t.Error("unexpected Pane strings")
	}
}

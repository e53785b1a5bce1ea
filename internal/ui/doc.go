// Package ui provides the user interface components for the noro TUI.
//
// # Overview
//
// The ui package implements the visual components of noro using the Bubble Tea
// framework and Lipgloss styling library. Components hold presentation state
// only; conversation state lives in the transcript package and is pushed in by
// the app package.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├──────┬──────────────────────────────────────────────┤
//	│      │                                              │
//	│ Side │   Chat Panel                                 │
//	│ bar  │   (landing screen or transcript)             │
//	│      ├──────────────────────────────────────────────┤
//	│      │   Composer                                   │
//	├──────┴──────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The sidebar is a narrow icon rail when collapsed and a wider panel when
// expanded. It is hidden entirely on narrow terminals.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and the entry count on a gradient
// background derived from the active theme.
//
// Footer: Shows context-aware key bindings and flash messages.
//
// Sidebar: Logo, title and the New Chat action.
//
// Chat: Landing screen with call-to-action buttons, the transcript list with
// a selectable entry, and the composer textarea.
//
// Modal: Hosts a modals.ModalState (settings, help) centered over the screen.
//
// # Theming
//
// Colors come from the active Theme. SetTheme regenerates every exported style
// variable, so components read styles at render time rather than caching them.
package ui

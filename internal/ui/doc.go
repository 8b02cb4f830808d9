// Package ui holds the lipgloss palette the CLI uses for headers, status lines and progress.
package ui

package main

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorField   = lipgloss.Color("#89b4fa")
)

// renderEmbed draws an embed as a bordered box in the embed's color
func renderEmbed(e *discordgo.MessageEmbed, width int) string {
	if width < 20 {
		width = 20
	}

	var parts []string
	if e.Title != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorText).Bold(true).Render(e.Title))
	}
	if e.Description != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorText).Render(stripCodeFences(e.Description)))
	}

	for _, field := range e.Fields {
		name := lipgloss.NewStyle().Foreground(colorField).Bold(true).Render(field.Name)
		value := lipgloss.NewStyle().Foreground(colorText).PaddingLeft(2).Render(stripCodeFences(field.Value))
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, name, value))
	}

	if e.Image != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorSubtext).Render("image: "+e.Image.URL))
	}
	if e.Thumbnail != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorSubtext).Render("thumbnail: "+e.Thumbnail.URL))
	}
	if e.Footer != nil && e.Footer.Text != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorSubtext).Italic(true).Render(e.Footer.Text))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(fmt.Sprintf("#%06x", e.Color))).
		Padding(0, 1).
		Width(width)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// stripCodeFences drops the ``` lines Discord would turn into a code block
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "```" {
			continue
		}
		kept = append(kept, strings.TrimSuffix(strings.TrimPrefix(line, "```"), "```"))
	}
	return strings.Join(kept, "\n")
}

package main

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

const roundTo = time.Millisecond

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	questionStyle = lipgloss.NewStyle().
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	graphLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	vectorLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("14"))

	latencyStyle = lipgloss.NewStyle().
			Faint(true)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
)

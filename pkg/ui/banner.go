package ui

import "strings"

const (
	reset      = "\033[0m"
	bold       = "\033[1m"
	dim        = "\033[2m"
	emberRed   = "\033[38;5;203m"
	amber      = "\033[38;5;214m"
	gold       = "\033[38;5;220m"
	mint       = "\033[38;5;121m"
	cobalt     = "\033[38;5;33m"
	deepIndigo = "\033[38;5;61m"
	slate      = "\033[38;5;245m"
)

// Banner renders a colored memtop wordmark for the startup splash.
func Banner() string {
	var b strings.Builder

	letters := [][]string{
		{"███╗   ███╗", "████╗ ████║", "██╔████╔██║", "██║╚██╔╝██║", "██║ ╚═╝ ██║", "╚═╝     ╚═╝"},
		{"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
		{"███╗   ███╗", "████╗ ████║", "██╔████╔██║", "██║╚██╔╝██║", "██║ ╚═╝ ██║", "╚═╝     ╚═╝"},
		{"████████╗", "╚══██╔══╝", "   ██║   ", "   ██║   ", "   ██║   ", "   ╚═╝   "},
		{" ██████╗ ", "██╔═══██╗", "██║   ██║", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔═══╝ ", "██║     ", "╚═╝     "},
	}
	gradient := []string{emberRed, amber, gold, mint, cobalt, deepIndigo}
	rows := make([]string, len(letters[0]))
	for i, letter := range letters {
		color := gradient[i%len(gradient)]
		for row := 0; row < len(letter); row++ {
			rows[row] += color + letter[row] + " "
		}
	}
	for _, line := range rows {
		b.WriteString(bold + line + reset + "\n")
	}

	b.WriteString("\n")
	b.WriteString(bold + amber + "memtop" + reset + "  •  proportional memory lens\n\n")

	return b.String()
}

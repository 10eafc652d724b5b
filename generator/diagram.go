package generator

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/chord-forge/instrument"
)

// FormatDiagram renders a text diagram of a scored fingering, highest
// string on top, with the score line and sounding notes underneath.
func FormatDiagram(scored ScoredFingering, inst instrument.Instrument) string {
	states := scored.Fingering.Strings()
	names := inst.StringNames()

	var lines []string
	for i := len(states) - 1; i >= 0; i-- {
		name := "?"
		if i < len(names) {
			name = names[i]
		}
		fret := "x"
		if f, played := states[i].Fret(); played {
			fret = fmt.Sprintf("%d", f)
		}
		lines = append(lines, fmt.Sprintf("%s|---%s---", name, fret))
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Score: %d | Position: Fret %d | Voicing: %s",
		scored.Score, scored.Position, scored.Voicing))
	if scored.HasRootInBass {
		lines = append(lines, "Root in bass: Yes")
	}

	pitchNames := make([]string, 0, len(scored.Notes))
	seen := map[string]bool{}
	for _, note := range scored.Notes {
		name := note.Pitch.SharpName()
		if !seen[name] {
			seen[name] = true
			pitchNames = append(pitchNames, name)
		}
	}
	lines = append(lines, "Notes: "+strings.Join(pitchNames, ", "))

	return strings.Join(lines, "\n")
}

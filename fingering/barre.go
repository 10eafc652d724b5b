package fingering

import "sort"

// Barre is one finger laid flat across consecutive strings at a
// single fret.
type Barre struct {
	Fret       int  `json:"fret"`
	FromString int  `json:"from_string"`
	ToString   int  `json:"to_string"`
	Full       bool `json:"full"`
}

// StringSpan returns how many strings the barre covers.
func (b Barre) StringSpan() int { return b.ToString - b.FromString + 1 }

// DetectBarres finds the barres in a fingering. A full barre is
// recognized when the lowest fretted position covers both the first
// and the last played string; independently, any run of two or more
// strictly consecutive strings sharing a fret above that position is
// a mini-barre. Both kinds may coexist (an A-shape barre chord has a
// full barre plus a mini-barre). Results are ordered by fret, then by
// starting string.
func DetectBarres(f Fingering) []Barre {
	minFret := f.MinFret()
	if minFret == 0 {
		return nil
	}

	firstPlayed, lastPlayed := -1, -1
	for i, s := range f.Strings() {
		if s.Played() {
			if firstPlayed < 0 {
				firstPlayed = i
			}
			lastPlayed = i
		}
	}

	var barres []Barre
	states := f.Strings()
	fullBarre := lastPlayed > firstPlayed &&
		states[firstPlayed] == StringState(minFret) &&
		states[lastPlayed] == StringState(minFret)
	if fullBarre {
		barres = append(barres, Barre{
			Fret:       minFret,
			FromString: firstPlayed,
			ToString:   lastPlayed,
			Full:       true,
		})
	}

	for fret, indices := range f.fretGroups() {
		if fret == minFret && fullBarre {
			continue
		}
		if fret == minFret {
			continue // runs at the base position without a full barre are fingered, not barred
		}
		for _, run := range consecutiveRuns(indices) {
			if run[1]-run[0]+1 >= 2 {
				barres = append(barres, Barre{
					Fret:       fret,
					FromString: run[0],
					ToString:   run[1],
				})
			}
		}
	}

	sort.Slice(barres, func(i, j int) bool {
		if barres[i].Fret != barres[j].Fret {
			return barres[i].Fret < barres[j].Fret
		}
		return barres[i].FromString < barres[j].FromString
	})
	return barres
}

// HasFullBarre reports whether DetectBarres finds a full barre.
func HasFullBarre(f Fingering) bool {
	for _, b := range DetectBarres(f) {
		if b.Full {
			return true
		}
	}
	return false
}

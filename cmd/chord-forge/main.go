// chord-forge is the command line front end: look up fingerings for a
// chord name, identify the chord a fingering plays, and lay out
// fingering sequences for a whole progression.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-forge/analyzer"
	"github.com/RyanBlaney/chord-forge/chords"
	"github.com/RyanBlaney/chord-forge/config"
	"github.com/RyanBlaney/chord-forge/generator"
	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/logging"
	"github.com/RyanBlaney/chord-forge/progression"
	"github.com/RyanBlaney/chord-forge/theory"
)

var (
	flagInstrument  string
	flagTuning      string
	flagCapo        int
	flagLimit       int
	flagPosition    int
	flagVoicing     string
	flagContext     string
	flagMaxDistance int
	flagWeightsFile string
	flagVerbose     bool

	rootCmd = &cobra.Command{
		Use:   "chord-forge",
		Short: "Chord fingering lookup, naming and progression planning for fretted instruments",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logging.SetLevel(logging.DebugLevel)
			}
		},
	}

	findCmd = &cobra.Command{
		Use:   "find <chord>",
		Short: "Find fingerings for a chord name",
		Args:  cobra.ExactArgs(1),
		RunE:  runFind,
	}

	analyzeCmd = &cobra.Command{
		Use:     "analyze <tab>",
		Aliases: []string{"name"},
		Short:   "Identify the chord a fingering plays",
		Args:    cobra.ExactArgs(1),
		RunE:    runAnalyze,
	}

	progressionCmd = &cobra.Command{
		Use:   "progression <chords>",
		Short: "Plan fingering sequences for a chord progression",
		Long:  `Plan fingering sequences for a space-separated chord list, e.g. "C Am F G".`,
		Args:  cobra.ExactArgs(1),
		RunE:  runProgression,
	}

	instrumentsCmd = &cobra.Command{
		Use:   "instruments",
		Short: "List the built-in instruments",
		RunE:  runInstruments,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{findCmd, analyzeCmd, progressionCmd} {
		cmd.Flags().StringVarP(&flagInstrument, "instrument", "i", "guitar",
			"instrument ID (see the instruments command)")
		cmd.Flags().StringVarP(&flagTuning, "tuning", "t", "",
			`custom tuning, low to high, e.g. "D2,A2,D3,G3,B3,E4" (overrides --instrument)`)
		cmd.Flags().IntVarP(&flagCapo, "capo", "c", 0, "capo fret")
	}
	for _, cmd := range []*cobra.Command{findCmd, progressionCmd} {
		cmd.Flags().IntVarP(&flagPosition, "position", "p", -1,
			"prefer fingerings near this fret")
		cmd.Flags().StringVarP(&flagVoicing, "voicing", "v", "",
			"voicing filter: full, core, jazzy or incomplete")
		cmd.Flags().StringVarP(&flagContext, "context", "x", "solo",
			"playing context: solo or band")
		cmd.Flags().StringVarP(&flagWeightsFile, "weights", "w", "",
			"YAML file overriding the scoring weights")
	}
	findCmd.Flags().IntVarP(&flagLimit, "limit", "l", 5, "number of fingerings to show")
	progressionCmd.Flags().IntVarP(&flagLimit, "limit", "l", 3,
		"number of alternative progressions to show")
	progressionCmd.Flags().IntVarP(&flagMaxDistance, "max-distance", "d", 3,
		"maximum fret distance between consecutive fingerings")

	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(progressionCmd)
	rootCmd.AddCommand(instrumentsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveInstrument builds the instrument the command operates on:
// a custom tuning when --tuning is given, the registry entry
// otherwise, capoed when --capo is set.
func resolveInstrument() (instrument.Instrument, error) {
	var inst instrument.Instrument
	if flagTuning != "" {
		tuning, err := parseTuning(flagTuning)
		if err != nil {
			return nil, err
		}
		inst, err = instrument.NewCustom(tuning)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		inst, err = instrument.ByID(flagInstrument)
		if err != nil {
			return nil, err
		}
	}
	if flagCapo > 0 {
		return instrument.NewCapoedInstrument(inst, flagCapo)
	}
	return inst, nil
}

func parseTuning(s string) ([]theory.Note, error) {
	parts := strings.Split(s, ",")
	tuning := make([]theory.Note, 0, len(parts))
	for _, part := range parts {
		note, err := theory.ParseNote(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid tuning note %q: %w", part, err)
		}
		tuning = append(tuning, note)
	}
	return tuning, nil
}

func generatorOptions() (generator.Options, error) {
	opts := generator.DefaultOptions()
	opts.Limit = flagLimit
	opts.Context = generator.ParsePlayingContext(flagContext)

	if flagPosition >= 0 {
		pos := flagPosition
		opts.PreferredPosition = &pos
	}
	if flagVoicing != "" {
		voicing, ok := theory.ParseVoicing(flagVoicing)
		if !ok {
			return opts, fmt.Errorf("unknown voicing %q (want full, core, jazzy or incomplete)", flagVoicing)
		}
		opts.Voicing = &voicing
	}
	if flagWeightsFile != "" {
		weights, err := config.Load(flagWeightsFile)
		if err != nil {
			return opts, err
		}
		opts.Weights = weights
	}
	return opts, nil
}

func runFind(cmd *cobra.Command, args []string) error {
	chordName := args[0]

	genOpts, err := generatorOptions()
	if err != nil {
		return err
	}

	inst, err := resolveInstrument()
	if err != nil {
		return err
	}
	spec, err := theory.ParseChord(chordName)
	if err != nil {
		return err
	}

	results := generator.Generate(spec, inst, genOpts)
	if len(results) == 0 {
		fmt.Printf("No fingerings found for %s\n", chordName)
		return nil
	}

	header := fmt.Sprintf("Fingerings for %s [%s]", chordName, inst.Name())
	if flagCapo > 0 {
		header += fmt.Sprintf(" (capo %d)", flagCapo)
	}
	fmt.Printf("\n%s (showing %d)\n\n", header, len(results))

	for i, scored := range results {
		fmt.Printf("%d. %s\n", i+1, scored.Tab)
		fmt.Println(generator.FormatDiagram(scored, inst))
		fmt.Println()
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	tab := args[0]

	inst, err := resolveInstrument()
	if err != nil {
		return err
	}

	matches := analyzer.AnalyzeTab(tab, inst)

	header := fmt.Sprintf("Analyzing %s [%s]", tab, inst.Name())
	if flagCapo > 0 {
		header += fmt.Sprintf(" (capo %d)", flagCapo)
	}
	fmt.Printf("\n%s\n\n", header)

	if len(matches) == 0 {
		fmt.Println("Could not identify a chord (not enough notes)")
		return nil
	}

	top := matches[0]
	fmt.Printf("Best match: %s\n", top.Name)
	fmt.Printf("  Confidence: %d%%\n", top.Confidence)
	fmt.Printf("  Root in bass: %s\n", yesNo(top.RootInBass))
	if top.Shape != "" {
		fmt.Printf("  Shape: %s\n", top.Shape)
	}
	fmt.Printf("  %s\n", top.Explanation)

	if len(matches) > 1 {
		fmt.Println("\nAlternative interpretations:")
		for i, m := range matches[1:] {
			if i >= 4 {
				break
			}
			fmt.Printf("  %d. %s (confidence %d%%, score %d)\n", i+1, m.Name, m.Confidence, m.Score)
		}
	}
	return nil
}

func runProgression(cmd *cobra.Command, args []string) error {
	chordNames := strings.Fields(args[0])
	if len(chordNames) == 0 {
		fmt.Println("No chords provided")
		return nil
	}

	genOpts, err := generatorOptions()
	if err != nil {
		return err
	}
	genOpts.Limit = 0 // progression sets its own candidate count

	inst, err := resolveInstrument()
	if err != nil {
		return err
	}

	opts := progression.DefaultOptions()
	opts.Limit = flagLimit
	opts.MaxFretDistance = flagMaxDistance
	opts.Generator = genOpts

	sequences, err := progression.Generate(chordNames, inst, opts)
	if err != nil {
		return err
	}
	if len(sequences) == 0 {
		fmt.Println("No valid progressions found")
		return nil
	}

	header := fmt.Sprintf("Progression: %s [%s]", strings.Join(chordNames, " -> "), inst.Name())
	if flagCapo > 0 {
		header += fmt.Sprintf(" (capo %d)", flagCapo)
	}
	fmt.Printf("\n%s\n", header)

	for altIdx, seq := range sequences {
		fmt.Printf("\n%s\n", strings.Repeat("-", 60))
		fmt.Printf("Alternative #%d | total %d | avg transition %.1f\n",
			altIdx+1, seq.TotalScore, seq.AvgTransitionScore)
		fmt.Println(strings.Repeat("-", 60))

		for i, scored := range seq.Fingerings {
			fmt.Printf("\n[%d] %s - fret %d\n", i+1, seq.Chords[i], scored.Position)
			for _, line := range strings.Split(generator.FormatDiagram(scored, inst), "\n") {
				fmt.Printf("  %s\n", line)
			}

			if i < len(seq.Transitions) {
				tr := seq.Transitions[i]
				fmt.Printf("\n  transition score %d: %d movement(s), %d anchor(s), %d fret(s)",
					tr.Score, tr.FingerMovements, tr.CommonAnchors, tr.PositionDistance)
				if tr.Relaxed {
					fmt.Printf(" [exceeds max distance]")
				}
				fmt.Println()
			}
		}
	}
	return nil
}

func runInstruments(cmd *cobra.Command, args []string) error {
	fmt.Println("Built-in instruments:")
	for _, id := range chords.InstrumentIDs() {
		info, err := chords.InstrumentInfo(id)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s %s, %d strings (%s), %d frets\n",
			id, info.Name, info.StringCount, strings.Join(info.Tuning, " "), info.MaxFret)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

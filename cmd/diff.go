package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tayjaybabee/mididiff/diff"
	"github.com/tayjaybabee/mididiff/midi"
	"github.com/tayjaybabee/mididiff/note"
	"github.com/tayjaybabee/mididiff/util"
)

var forceOverwrite bool

func init() {
	diffCmd.Flags().BoolVarP(&forceOverwrite, "force", "f", false, "overwrite the output path instead of picking a free one")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <fileA> <fileB> [outFile]",
	Short: "Compare two MIDI files and output their differences",
	Long: `Extracts the notes of both files, keeps the ones present in exactly one
of them and writes those to a new MIDI file (default diff.mid).`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := "diff.mid"
		if len(args) == 3 {
			out = args[2]
		}
		return RunDiff(args[0], args[1], out, forceOverwrite)
	},
}

// RunDiff is the whole pipeline: decode both files, extract their notes,
// keep the symmetric difference and save it as a new file. The output
// inherits fileA's ticks-per-beat. Unless force is set, an existing
// output path is left alone and a numbered sibling is written instead.
func RunDiff(fileA, fileB, outFile string, force bool) error {
	midA, err := midi.ReadMidiFile(fileA)
	if err != nil {
		return err
	}
	midB, err := midi.ReadMidiFile(fileB)
	if err != nil {
		return err
	}

	notesA := note.Extract(midA)
	notesB := note.Extract(midB)

	onlyInA := diff.OnlyIn(notesA, notesB)
	onlyInB := diff.OnlyIn(notesB, notesA)
	fmt.Printf("Notes only in A: %v\n", len(onlyInA))
	fmt.Printf("Notes only in B: %v\n", len(onlyInB))

	res, err := note.ToSMF(append(onlyInA, onlyInB...), midi.TicksPerBeat(midA))
	if err != nil {
		return err
	}

	if !force {
		outFile = util.NextAvailablePath(outFile)
	}
	if err := midi.WriteMidiFile(outFile, res); err != nil {
		return err
	}

	info, err := os.Stat(outFile)
	if err != nil {
		return err
	}
	fmt.Printf("Saved diff MIDI -> %v (%v)\n", outFile, humanize.Bytes(uint64(info.Size())))
	return nil
}

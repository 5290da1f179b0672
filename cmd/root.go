package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "midi-diff",
	Short: "Compare MIDI files and output their differences",
	Long:  `MIDIDiff - Compare two MIDI performances and write the notes unique to either one as a new MIDI file.`,
}

// Execute runs the CLI. Old releases took the three file paths straight
// on the root command, so an unknown first argument is rewritten into an
// implicit diff invocation before cobra sees it.
func Execute() {
	if len(os.Args) > 1 && !isKnownCommand(os.Args[1]) {
		rootCmd.SetArgs(append([]string{"diff"}, os.Args[1:]...))
	}
	cobra.CheckErr(rootCmd.Execute())
}

func isKnownCommand(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == arg || c.HasAlias(arg) {
			return true
		}
	}
	// built-ins cobra only registers at execution time
	switch arg {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

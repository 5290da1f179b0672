package cmd

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tayjaybabee/mididiff/constants"
	"github.com/tayjaybabee/mididiff/util"
)

// long PATH values are useless in bug reports past this point
const pathTruncateLength = 100

func init() {
	rootCmd.AddCommand(debugInfoCmd)
}

var debugInfoCmd = &cobra.Command{
	Use:   "debug-info",
	Short: "Display diagnostic and environment information",
	Long:  `Display diagnostic and environment information to copy into bug reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		printDebugInfo()
	},
}

func printDebugInfo() {
	fmt.Println("MIDIDiff Debug Information")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("MIDIDiff: %v\n", Version)
	fmt.Printf("Go: %v\n", runtime.Version())
	fmt.Printf("Platform: %v/%v\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("gitlab.com/gomidi/midi/v2: %v\n", dependencyVersion("gitlab.com/gomidi/midi/v2"))

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "unknown"
	}
	fmt.Printf("Working Directory: %v\n", cwd)

	envVars := map[string]string{
		constants.UpdateCheckEnvVar: orNotSet(os.Getenv(constants.UpdateCheckEnvVar)),
		"PATH":                      truncate(orNotSet(os.Getenv("PATH")), pathTruncateLength),
		"GOPATH":                    orNotSet(os.Getenv("GOPATH")),
	}
	keys := util.GetKeys(envVars)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%v: %v\n", k, envVars[k])
	}
}

func orNotSet(v string) string {
	if v == "" {
		return "not set"
	}
	return v
}

func truncate(v string, max int) string {
	if v == "not set" || len(v) <= max {
		return v
	}
	return v[:max] + "..."
}

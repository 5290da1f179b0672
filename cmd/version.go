package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tayjaybabee/mididiff/constants"
)

// Version is stamped by release builds via -ldflags "-X ...cmd.Version=".
var Version = "dev"

func init() {
	rootCmd.Version = Version
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and environment info",
	Long: fmt.Sprintf(`Show version and environment info (set %v to a truthy value like '1',
'true', or 'yes' to also check for updates).`, constants.UpdateCheckEnvVar),
	Run: func(cmd *cobra.Command, args []string) {
		printVersionInfo()
	},
}

func printVersionInfo() {
	fmt.Printf("MIDIDiff version: %v\n", Version)
	fmt.Printf("Go: %v\n", runtime.Version())
	fmt.Printf("Platform: %v/%v\n", runtime.GOOS, runtime.GOARCH)
	for _, dep := range []string{"gitlab.com/gomidi/midi/v2", "github.com/spf13/cobra"} {
		fmt.Printf("%v: %v\n", dep, dependencyVersion(dep))
	}

	if constants.UpdateCheckEnabled() {
		fmt.Println(updateStatus(Version))
	} else {
		fmt.Printf("Update check disabled (set %v=1 to enable).\n", constants.UpdateCheckEnvVar)
	}
}

func dependencyVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return "not installed"
}

type releaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

func latestRelease() (releaseInfo, error) {
	var rel releaseInfo
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(constants.LatestReleaseURL)
	if err != nil {
		return rel, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return rel, fmt.Errorf("unexpected status %v", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return rel, err
	}
	if rel.TagName == "" {
		return rel, errors.New("missing version metadata")
	}
	return rel, nil
}

func updateStatus(current string) string {
	rel, err := latestRelease()
	if err != nil {
		return fmt.Sprintf("Update check failed: %v", err)
	}
	latest := strings.TrimPrefix(rel.TagName, "v")
	if latest == strings.TrimPrefix(current, "v") {
		return "Up to date."
	}
	return fmt.Sprintf("Update available: %v (installed %v).", latest, current)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/tayjaybabee/mididiff/constants"
)

func init() {
	rootCmd.AddCommand(upgradeCmd)
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Check for a newer release and open the download page",
	Long:  `Check for a newer release and, if one exists, open its download page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rel, err := latestRelease()
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		latest := strings.TrimPrefix(rel.TagName, "v")
		if latest == strings.TrimPrefix(Version, "v") {
			fmt.Println("Up to date.")
			return nil
		}
		fmt.Printf("Update available: %v (installed %v).\n", latest, Version)
		url := rel.HTMLURL
		if url == "" {
			url = constants.ReleasesURL
		}
		return browser.OpenURL(url)
	},
}

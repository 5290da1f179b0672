package cmd

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/tayjaybabee/mididiff/constants"
)

func init() {
	rootCmd.AddCommand(docsCmd)
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Open the documentation in a browser",
	Long:  `Open the documentation in a browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Opening %v\n", constants.DocsURL)
		return browser.OpenURL(constants.DocsURL)
	},
}

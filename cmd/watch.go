package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tayjaybabee/mididiff/util"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <fileA> <fileB> [outFile]",
	Short: "Re-runs diff whenever either input changes",
	Long: `Diffs the two files once, then keeps watching them and rewrites the
output whenever either one changes. Stop with Ctrl-C.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := "diff.mid"
		if len(args) == 3 {
			out = args[2]
		}
		return watch(args[0], args[1], out)
	},
}

func watch(fileA, fileB, outFile string) error {
	// Pick the output path once; every re-diff overwrites it.
	outFile = util.NextAvailablePath(outFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the parent directories. Editors replace files on save, which
	// drops watches registered on the files themselves.
	dirs := make(map[string]bool)
	dirs[filepath.Dir(fileA)] = true
	dirs[filepath.Dir(fileB)] = true
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	targets := map[string]bool{
		filepath.Clean(fileA): true,
		filepath.Clean(fileB): true,
	}

	runOnce := func() {
		if err := RunDiff(fileA, fileB, outFile, true); err != nil {
			log.Printf("diff failed: %v", err)
		}
	}
	runOnce()

	debounced := debounce.New(500 * time.Millisecond)
	fmt.Printf("Watching %v and %v...\n", fileA, fileB)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounced(runOnce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
)

// NextAvailablePath returns path untouched when nothing exists there yet,
// otherwise the first of name_1.ext, name_2.ext, ... that is free.
func NextAvailablePath(path string) string {
	if !Exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%v_%v%v", base, i, ext)
		if !Exists(candidate) {
			return candidate
		}
	}
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

package constants

import (
	"os"
	"strings"
)

// DefaultTicksPerBeat is used when an input file carries no metric time
// format (SMPTE-timed files) and for notes built programmatically.
const DefaultTicksPerBeat = 480

// UpdateCheckEnvVar gates the network call made by the version command.
// The name is kept from earlier releases, typo included.
const UpdateCheckEnvVar = "MIDIFF_CHECK_UPDATES"

const DocsURL = "https://github.com/tayjaybabee/MIDIDiff#readme"

const ReleasesURL = "https://github.com/tayjaybabee/MIDIDiff/releases"

const LatestReleaseURL = "https://api.github.com/repos/tayjaybabee/MIDIDiff/releases/latest"

func UpdateCheckEnabled() bool {
	switch strings.ToLower(os.Getenv(UpdateCheckEnvVar)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

package build

// CurrentCommit is the git revision, set by the build system.
var CurrentCommit string

// BuildVersion is the local build version.
const BuildVersion = "0.4.0"

func UserVersion() string {
	return BuildVersion + CurrentCommit
}

// Package version records the version number and source revision of the
// build. The version number is set by the makefile on release; all other
// information comes from the Go build info.
package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "Scorewatch"

// if number is empty then the project was probably not built using the
// makefile
var number string

// revision contains the vcs revision. if the source has been modified but has
// not been committed then the revision string will be suffixed with "+dirty"
var revision string

// version contains the current version number of the project
//
// the string "unreleased" means that the project has been built manually (ie.
// not with the makefile)
//
// the string "local" means that there is no version number and no vcs
// information. this can happen when compiling/running with "go run ."
var version string

// Version returns the version string, the revision string and whether this
// is a numbered "release" version
func Version() (string, string, bool) {
	return version, revision, version == number
}

// Title returns a string suitable for a window title: the application name,
// plus the version number or revision depending on whether this is a release
func Title() string {
	ver, rev, rel := Version()
	if rel {
		return fmt.Sprintf("%s (%s)", ApplicationName, ver)
	}
	return fmt.Sprintf("%s (%s)", ApplicationName, rev)
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		revision = "no revision information"
	} else {
		revision = vcsRevision
		if vcsModified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	if number == "" {
		if vcs {
			version = "unreleased"
		} else {
			version = "local"
		}
	} else {
		version = number
	}
}

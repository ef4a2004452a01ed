package resources

import (
	"os"
	"path/filepath"
)

// the directory resources are kept in when running portably
const portableDir = "Scorewatch_UserData"

// path to the portable resources directory. valid only if checkPortable()
// returns true
var portablePath string

// checkPortable returns true if an empty file named 'portable.txt' exists in
// the same directory as the program binary
func checkPortable() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	d := filepath.Dir(exe)

	if _, err := os.Stat(filepath.Join(d, "portable.txt")); err != nil {
		return false
	}

	portablePath = filepath.Join(d, portableDir)
	return true
}

package platform

import (
	"os/exec"
	"runtime"
)

// SortCommand returns the name of the whole-line sort utility
func SortCommand() string {
	return "sort"
}

// SortUtilityAvailable reports whether the platform sort utility can be
// relied on for external sorting. Windows is excluded: its sort.exe has
// locale-dependent ordering and no stable byte-order mode, so large
// files are always sorted in process there.
func SortUtilityAvailable() bool {
	if runtime.GOOS == "windows" {
		return false
	}
	_, err := exec.LookPath(SortCommand())
	return err == nil
}

// CompareCommand returns the whole-file compare invocation for two
// paths. Both utilities exit 0 when files are identical, 1 when they
// differ and something else on error.
func CompareCommand(path1, path2 string) (name string, args []string) {
	if runtime.GOOS == "windows" {
		return "fc.exe", []string{"/L", path1, path2}
	}
	return "diff", []string{"-q", path1, path2}
}

// CompareUtilityAvailable reports whether the platform whole-file
// compare utility is on the path
func CompareUtilityAvailable() bool {
	name, _ := CompareCommand("", "")
	_, err := exec.LookPath(name)
	return err == nil
}

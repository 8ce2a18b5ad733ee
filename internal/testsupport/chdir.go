package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Chdir changes the working directory to dir for the duration of the test,
// updating PWD on POSIX platforms and restoring the original directory on
// cleanup. It matches testing.T.Chdir, which needs a newer Go than this
// module targets.
func Chdir(t testing.TB, dir string) {
	t.Helper()

	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	switch runtime.GOOS {
	case "windows", "plan9":
		// These platforms do not use the PWD variable.
	default:
		abs := dir
		if !filepath.IsAbs(abs) {
			abs, err = os.Getwd()
			if err != nil {
				t.Fatal(err)
			}
		}
		t.Setenv("PWD", abs)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testsupport.Chdir: restore working directory: " + err.Error())
		}
	})
}

// Package fstest provides a conformance test suite for validating filesystem
// provider implementations against the fs.Filesystem contract.
//
// Providers are read-only from the suite's point of view, so the caller is
// responsible for laying out the standard fixture before running it: every
// entry of Files written with its content, and EmptyDir created as an empty
// directory when the backend can represent one.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fsys := myprovider.New()
//	    for name, data := range fstest.Files {
//	        writeFile(fsys, name, data)
//	    }
//	    fstest.TestSuite(t, fsys)
//	}
package fstest

import (
	"slices"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
)

// EmptyDir is the fixture directory that must exist and contain no children.
const EmptyDir = "empty"

// Files is the standard fixture: slash-separated path to file content.
var Files = map[string][]byte{
	"testdir/testfile.txt":   []byte("test file content"),
	"testdir/sub/nested.txt": []byte("nested content"),
}

// TestSuite runs all conformance tests against a pre-populated filesystem.
func TestSuite(t *testing.T, filesystem fs.Filesystem) {
	TestSuiteWithSkip(t, filesystem, nil)
}

// TestSuiteWithSkip runs conformance tests with optional test skipping.
// The skipTests parameter is a slice of test names to skip (e.g., "ReadFS/ReadDirEmpty").
// This is useful for providers with known behavioral differences, such as object
// stores that cannot hold an empty directory.
func TestSuiteWithSkip(t *testing.T, filesystem fs.Filesystem, skipTests []string) {
	shouldSkip := func(testName string) bool {
		return slices.Contains(skipTests, testName)
	}

	t.Run("ReadFS", func(t *testing.T) {
		if shouldSkip("ReadFS") {
			t.Skip("Skipped by provider configuration")
			return
		}
		TestReadFSWithSkip(t, filesystem, skipTests)
	})
}

package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/dircompare/fs"
)

// TestReadFS tests read-only operations: Stat, ReadDir, ReadFile.
// Assumes filesystem is pre-populated with the standard fixture.
func TestReadFS(t *testing.T, filesystem parentfs.Filesystem) {
	TestReadFSWithSkip(t, filesystem, nil)
}

// TestReadFSWithSkip is TestReadFS with the named subtests skipped.
func TestReadFSWithSkip(t *testing.T, filesystem parentfs.Filesystem, skipTests []string) {
	tests := []struct {
		name string
		fn   func(t *testing.T, filesystem parentfs.Filesystem)
	}{
		{"StatFile", testReadFSStatFile},
		{"StatDir", testReadFSStatDir},
		{"StatNotExist", testReadFSStatNotExist},
		{"ReadDir", testReadFSReadDir},
		{"ReadDirNested", testReadFSReadDirNested},
		{"ReadDirEmpty", testReadFSReadDirEmpty},
		{"ReadDirNotExist", testReadFSReadDirNotExist},
		{"ReadFile", testReadFSReadFile},
		{"ReadFileNotExist", testReadFSReadFileNotExist},
		{"Join", testReadFSJoin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, skip := range skipTests {
				if skip == "ReadFS/"+tt.name {
					t.Skip("Skipped by provider configuration")
					return
				}
			}
			tt.fn(t, filesystem)
		})
	}
}

// testReadFSStatFile tests Stat() on a file.
func testReadFSStatFile(t *testing.T, filesystem parentfs.Filesystem) {
	want := Files["testdir/testfile.txt"]
	info, err := filesystem.Stat("testdir/testfile.txt")
	if err != nil {
		t.Errorf("Stat(%q): got error %v, want nil", "testdir/testfile.txt", err)
		return
	}
	if info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = true, want false", "testdir/testfile.txt")
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Stat(%q): Mode() = %v, want regular file", "testdir/testfile.txt", info.Mode())
	}
	if info.Size() != int64(len(want)) {
		t.Errorf("Stat(%q): Size() = %d, want %d", "testdir/testfile.txt", info.Size(), len(want))
	}
	if info.Name() != "testfile.txt" {
		t.Errorf("Stat(%q): Name() = %q, want %q", "testdir/testfile.txt", info.Name(), "testfile.txt")
	}
}

// testReadFSStatDir tests Stat() on a directory.
func testReadFSStatDir(t *testing.T, filesystem parentfs.Filesystem) {
	info, err := filesystem.Stat("testdir")
	if err != nil {
		t.Errorf("Stat(%q): got error %v, want nil", "testdir", err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = false, want true", "testdir")
	}
}

// testReadFSStatNotExist tests Stat() on a missing path returns fs.ErrNotExist.
func testReadFSStatNotExist(t *testing.T, filesystem parentfs.Filesystem) {
	_, err := filesystem.Stat("nonexistent")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
	}
}

// testReadFSReadDir tests ReadDir() lists both files and subdirectories.
func testReadFSReadDir(t *testing.T, filesystem parentfs.Filesystem) {
	entries, err := filesystem.ReadDir("testdir")
	if err != nil {
		t.Errorf("ReadDir(%q): got error %v, want nil", "testdir", err)
		return
	}
	if len(entries) != 2 {
		t.Errorf("ReadDir(%q): got %d entries, want 2", "testdir", len(entries))
		return
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Name()] = e.IsDir()
	}
	if isDir, ok := seen["testfile.txt"]; !ok || isDir {
		t.Errorf("ReadDir(%q): want file entry %q, got %v", "testdir", "testfile.txt", seen)
	}
	if isDir, ok := seen["sub"]; !ok || !isDir {
		t.Errorf("ReadDir(%q): want directory entry %q, got %v", "testdir", "sub", seen)
	}
}

// testReadFSReadDirNested tests ReadDir() on a joined nested path.
func testReadFSReadDirNested(t *testing.T, filesystem parentfs.Filesystem) {
	dir := filesystem.Join("testdir", "sub")
	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		t.Errorf("ReadDir(%q): got error %v, want nil", dir, err)
		return
	}
	if len(entries) != 1 || entries[0].Name() != "nested.txt" {
		t.Errorf("ReadDir(%q): got %v, want [nested.txt]", dir, names(entries))
	}
}

// testReadFSReadDirEmpty tests ReadDir() on an empty directory.
func testReadFSReadDirEmpty(t *testing.T, filesystem parentfs.Filesystem) {
	info, err := filesystem.Stat(EmptyDir)
	if err != nil {
		t.Errorf("Stat(%q): got error %v, want nil", EmptyDir, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = false, want true", EmptyDir)
	}

	entries, err := filesystem.ReadDir(EmptyDir)
	if err != nil {
		t.Errorf("ReadDir(%q): got error %v, want nil", EmptyDir, err)
		return
	}
	if len(entries) != 0 {
		t.Errorf("ReadDir(%q): got %v, want no entries", EmptyDir, names(entries))
	}
}

// testReadFSReadDirNotExist tests ReadDir() on a missing path returns fs.ErrNotExist.
func testReadFSReadDirNotExist(t *testing.T, filesystem parentfs.Filesystem) {
	_, err := filesystem.ReadDir("nonexistent")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
	}
}

// testReadFSReadFile tests ReadFile() returns the entire contents.
func testReadFSReadFile(t *testing.T, filesystem parentfs.Filesystem) {
	for name, want := range Files {
		data, err := filesystem.ReadFile(name)
		if err != nil {
			t.Errorf("ReadFile(%q): got error %v, want nil", name, err)
			continue
		}
		if !bytes.Equal(data, want) {
			t.Errorf("ReadFile(%q): got %q, want %q", name, data, want)
		}
	}
}

// testReadFSReadFileNotExist tests ReadFile() on a missing path returns fs.ErrNotExist.
func testReadFSReadFileNotExist(t *testing.T, filesystem parentfs.Filesystem) {
	_, err := filesystem.ReadFile("testdir/nonexistent.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(%q): got error %v, want fs.ErrNotExist", "testdir/nonexistent.txt", err)
	}
}

// testReadFSJoin tests Join() produces a path the provider can read back.
func testReadFSJoin(t *testing.T, filesystem parentfs.Filesystem) {
	p := filesystem.Join("testdir", "testfile.txt")
	if _, err := filesystem.Stat(p); err != nil {
		t.Errorf("Stat(Join(%q, %q)) = %q: got error %v, want nil", "testdir", "testfile.txt", p, err)
	}
}

func names(infos []fs.FileInfo) []string {
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Name())
	}
	return out
}

// Package dircompare compares a pair of files or directories, or their content.
//
// Construct an Entry or a Content for a path and compare it to another one with
// Equal. Both work recursively and compare names and bytes.
//
// An Entry includes its own name: two entries are equal only when their
// basenames match and their content is equal. A Content ignores the name of the
// object it was read from, so two directories with different names but the same
// children compare equal. The names of children always matter.
//
//	a, err := dircompare.Of("fixtures/should-eq/dir-a")
//	if err != nil {
//	    return err
//	}
//	b, err := dircompare.Of("fixtures/should-eq/dir-b")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(a.Equal(b)) // true
//
// Construction reads the whole subtree into memory in one pass. Any I/O error
// aborts it and is returned unchanged, so errors.Is(err, fs.ErrNotExist) and
// friends work as they would with the os package. Once built, values are
// immutable and comparing them never fails.
//
// By default paths are read from the native filesystem. WithFilesystem selects
// another provider, such as an in-memory filesystem, an S3 or MinIO bucket, or
// a git revision (see the fs sub-packages).
package dircompare

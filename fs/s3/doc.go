// Package s3 reads a tree from an Amazon S3 bucket through the AWS SDK for Go v2.
//
// Objects are files and "/"-delimited key prefixes are directories, so the
// contents of a bucket prefix can be compared with a local directory:
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    return err
//	}
//	remote := s3.New(awss3.NewFromConfig(cfg), "my-bucket",
//	    s3.WithPrefix("releases/v1.2.0"),
//	    s3.WithContext(ctx),
//	)
//	want, err := dircompare.Of("dist")
//	...
//	got, err := dircompare.OfFS(remote, ".")
//	...
//	if !want.Equal(got) { ... }
//
// Objects whose keys end in "/" are folder markers and never appear as files.
package s3

// Package s3 provides an S3-backed corpus source.
//
// # Usage
//
//	awscfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    return err
//	}
//	src := s3.New(awss3.NewFromConfig(awscfg), "my-bucket", "corpus/")
//	docs, err := src.Load(ctx)
//
// Objects under the prefix ending in .md or .txt are fetched in parallel;
// the object's base name becomes the doc id, so base names must be unique
// within the prefix.
package s3

// Package s3kit is a convenience layer over the AWS SDK for Go v2 for
// working with S3 objects and tabular data formats.
//
// A Client wraps credential and region selection; its Store exposes
// batch-capable read/write helpers that serialize and deserialize CSV,
// Parquet, Excel, and JSON content by object key extension.
//
// Example:
//
//	client, err := s3kit.New(s3kit.WithProfile("analytics"))
//	if err != nil {
//	    return err
//	}
//	store := client.Store(s3kit.WithBucket("my-bucket"))
//	frame, err := store.LoadFrame(ctx, "reports/daily.csv")
package s3kit

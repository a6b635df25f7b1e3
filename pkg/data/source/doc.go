// Package source resolves named datasets into rows.
//
// # Overview
//
// A chart either carries its rows inline or refers to a dataset by name:
//
//	{"data": {"name": "sales.csv"}, "mark": "bar", ...}
//
// The compiler only accepts inline rows, so the pipeline asks a [Resolver]
// to turn the name into rows first. Each backend has its own resolver:
//
//   - [FileResolver]: JSON, CSV and Parquet files below a directory
//   - [MongoResolver]: documents of a MongoDB collection
//   - [HTTPResolver]: JSON or CSV documents below a base URL
//
// [Chain] combines several resolvers and tries them in order. [Cached] puts a
// [cache.Cache] in front of any resolver.
//
// # Errors
//
// A resolver that does not know a name returns an error that matches both
// [ErrNotFound] (with the standard errors.Is) and the INVALID_DATA code of
// [errors.Is]. Any other failure stops a [Chain] immediately.
//
// # Row Shape
//
// Every resolver returns rows in the shape [data.Row] documents: numbers are
// float64, text is string, missing values are absent. CSV cells that parse
// as numbers become numbers; Parquet and BSON values are converted by type.
//
// [cache.Cache]: github.com/matzehuels/vischart/pkg/cache.Cache
// [errors.Is]: github.com/matzehuels/vischart/pkg/errors.Is
// [data.Row]: github.com/matzehuels/vischart/pkg/data.Row
package source

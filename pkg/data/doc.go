// Package data holds the row model charts are compiled from.
//
// A [Row] is a flat JSON object: field names map to scalar values. JSON
// numbers are float64, strings stay strings, booleans stay booleans and a
// JSON null is a present field with a nil value. Rows produced by other
// sources (CSV, Parquet, MongoDB) are normalized into the same shape with
// [Normalize] so the compilers never see integer or decimal types.
//
// # Category Keys
//
// Categorical channels group rows by a string key. [Key] turns any scalar
// into that key: strings are used as-is, numbers print in their shortest
// decimal form, booleans print as "true" or "false" and null prints as
// "null". As a result the string "42" and the number 42 land in the same
// category. This coercion is deliberate and not configurable.
//
// # Types
//
// Each channel has a [Type]: nominal, ordinal, quantitative or temporal. When
// a channel does not declare one, [InferType] looks at the first row that
// carries the field.
//
// # Aggregation
//
// [Aggregate] collapses rows that share the same grouping keys into a single
// row carrying a statistic (count, sum, mean, median, min, max or distinct).
// Statistics are computed with github.com/aclements/go-moremath/stats.
package data

// Package utils provides the scalar normalization helpers shared by the converter.
//
// It contains:
//   - Duration parsing and canonical "Xh Ym" formatting
//   - 12-hour clock formatting for heterogeneous upstream time strings
//   - The arrival day-crossing heuristic
//   - Great-circle distance between airports
//
// Every function in this package is total: malformed input degrades to a documented
// sentinel value instead of returning an error.
package utils

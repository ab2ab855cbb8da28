// Package rowstore holds the state behind the row benchmark: an ordered
// collection of labeled rows, an optional selection and a monotonic id
// counter.
//
// Operations:
//   - Create / RunLarge: replace all rows with freshly generated ones
//   - Append: add generated rows at the end
//   - UpdateEvery: suffix " !!!" to the label of every stride-th row
//   - Select / DeleteRow: id-keyed selection and removal
//   - DeleteByIndex / SwapRows: position-keyed removal and exchange
//   - Clear: drop all rows, keep the id counter
//
// A Store is not safe for concurrent use. Callers serialize operations.
package rowstore

// Package repokit carries the shared plumbing repository implementations
// are built against.
package repokit

import "apiwarden/internal/platform/store"

// Repos take a Queryer so the same code runs on the pool or inside a Tx.
type Queryer = store.RowQuerier

// RowQuerier is Queryer under the store's own name.
type RowQuerier = store.RowQuerier

// TxRunner executes a function inside a transaction.
type TxRunner = store.TxRunner

type (
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Package dkbl maintains a personal ledger built from periodic bank statement
// exports. It is local-first: every table is a plain `;` separated file in an
// output folder that the user may edit by hand.
//
// The core functionalities are:
//   - Ledger Store: creating a ledger from a first export (with a synthetic
//     init record reconciling the balance to the bank's closing amount) and
//     appending later, overlapping exports at a cutoff date.
//   - Mapping Reconciler: keeping the user-curated recipient → category table
//     in sync with the recipients seen in the ledger.
//   - Label Joiner: re-applying the mapping table's labels onto the ledger.
//   - Distribution Engine: expanding recurring transactions into monthly
//     installments for trend analysis.
//   - History Projector: a simplified balance time series, optionally using
//     the user's manual overrides.
//
// Every operation takes immutable values and returns new ones; persistence
// is handled by [Folder] and the Encode/Decode functions.
//
// This package serves as the foundational logic for the `dkbl` command-line
// tool.
package dkbl

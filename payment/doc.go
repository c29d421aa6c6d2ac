// Package payment exposes the payment operations of the native library:
// minting payment addresses and building/parsing payment-related ledger
// requests. Addresses are fully qualified as pay:<method>:<identifier>.
//
// The calling styles are the same triples as package pool: blocking,
// blocking with a deadline, and closure-based.
package payment

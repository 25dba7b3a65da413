// Package domain provides the pure domain layer for the qnet ledger: the four
// registries' entities, the authorization guard, the temporal validity check and
// the governance state machine.
//
// The package has no infrastructure dependencies:
//   - Entities encapsulate their state; constructors and transition methods are the
//     only way to change it.
//   - Every transition validates all preconditions before touching any field, so a
//     failed call leaves the entity exactly as it was.
//   - The sender identity and the clock value are explicit parameters; nothing here
//     reads wall-clock time.
//   - Repository interfaces describe persistence without binding to a backend.
package domain

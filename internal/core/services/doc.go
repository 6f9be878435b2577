// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search core is a set of pure functions over an immutable
// domain.DocumentSet: BuildDocuments produces the set, Search scans it.
// Index holds the current set for long-running adapters and swaps it
// wholesale on rebuild.
//
// Services are pure Go with no CGO or external dependencies.
package services

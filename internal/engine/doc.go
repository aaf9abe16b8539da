// Package engine implements freeze, thaw and their deep variants.
//
// Freezing rebinds an object's shape to a specialized shape obtained from
// the type cache; thawing rebinds it to the original shape. Neither copies
// the object, so every reference to it observes the change.
//
// ARCHITECTURE:
//
// Rebinding:
// Fixed-layout objects (List, Dict, Set, Struct) are rebound through the
// configured object.LayoutAdapter. Everything else must implement
// object.Rebindable. Objects that are neither are skipped like
// unsupported shapes.
//
// Traversal:
// DeepFreeze and DeepThaw walk the attribute and item graph with an
// explicit work stack and a per-call visited set, so cycles terminate and
// every reachable node is processed once. Exclusion sets prune nodes by
// identity, instance type, attribute name and item key.
//
// INVARIANTS:
//   - Freeze and Thaw return their argument.
//   - Freezing a frozen or inherently immutable object is a no-op. The
//     flags of the first freeze persist.
//   - Thaw never fails on mutable input.
//   - Unsupported shapes are skipped with a diagnostic, never an error.
//
// Concurrency: an Engine is safe for concurrent use across distinct
// objects. Freezing an object while another goroutine mutates it is
// outside the contract.
package engine

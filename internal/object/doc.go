// Package object provides the object model that cryostasis freezes.
//
// Every object carries a pointer to its Shape, the behavioral descriptor
// that plays the role of a runtime type. Freezing an object rebinds that
// pointer to a specialized shape whose Guard denies mutation; thawing
// rebinds it to the original shape. The object itself is never copied, so
// every existing reference observes the change.
//
// Key design constraints:
//   - Shapes form a single-inheritance chain. A specialized shape always has
//     the original shape as its base, so IsInstance keeps answering true for
//     the original shape after freezing.
//   - Specialized shapes cannot construct new instances.
//   - Object implementations must be comparable (containers are pointers,
//     scalars are value types) because identity is used as a map key during
//     traversal, repr and equality.
//   - List, Dict, Set and Struct are fixed-layout: their shape slot is only
//     writable through a LayoutAdapter. Record and Func expose SetShape.
package object

// Package match decides which struct fields an entry applies to.
//
// Matching is purely textual: a field matches when its declared type is a
// bare named path (Name or pkg.Name) whose final segment equals the final
// segment of the entry's target type. Qualifiers and type arguments are
// ignored, so two distinct types sharing a simple name from different
// packages are indistinguishable. No type resolution takes place.
package match

// Package mapping parses //structupdate directives into a validated
// ConfigurationSet: the ordered table of (target type, transform function)
// entries for one struct.
//
// # Directive grammar
//
// Directives are comment lines in the doc comment of a type declaration:
//
//	//structupdate:with ty=int32 func=double
//	//structupdate:with ty=string func=strings.TrimSpace
//	//structupdate:with ty=Celsius func="units.Clamp[Celsius]"
//	type Reading struct { ... }
//
// The bare marker "//structupdate" annotates a declaration without adding
// an entry. Each with entry requires exactly the keys ty and func. Values
// are bare tokens or Go-quoted strings; quoting is needed when a value
// contains spaces (e.g. type argument lists).
//
// # Paths
//
// Both values must be Go paths: an identifier or a package-qualified
// identifier, optionally instantiated with type arguments. Only the final
// segment of ty (without type arguments) takes part in field matching.
//
// # Errors
//
// Malformed entries are reported as positioned diagnostics; every problem
// on the declaration is reported. A declaration that is not a struct, or
// that declares no entries, is a fatal error.
package mapping

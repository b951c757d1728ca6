// Package gen renders package plans into Go source.
//
// Generation approach uses text/template + go/format. Each package gets a
// single file holding one method per annotated struct:
//
//	func (c *Counter) UpdateStruct() {
//		c.Count = double(c.Count)
//	}
//
// Output is deterministic: structs keep source order, statements keep
// entry-then-field order, imports are sorted.
package gen

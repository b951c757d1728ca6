// Package plan turns annotated declarations into the update statements of
// their generated methods.
//
// Resolution pipeline:
//  1. Analyze packages → annotated StructDecls
//  2. Extract each struct's directives → ConfigurationSet (or diagnostics)
//  3. For each entry in order, for each field in order, emit an Update when
//     the field's type matches the entry's target type
//  4. Collect the imports the transform functions need
//  5. Warn about entries that matched no field
//
// A field matching two entries receives two updates; the second one sees
// the result of the first. Structural problems (non-struct shape, empty
// configuration, embedded fields) abort with a *diagnostic.FatalError.
package plan

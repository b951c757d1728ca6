package mapping

import (
	"fmt"
	"go/token"

	"struct-update/internal/analyze"
	"struct-update/internal/diagnostic"
)

// Entry is one (target type, transform function) pair.
type Entry struct {
	Ty   Path           `yaml:"ty"`
	Func Path           `yaml:"func"`
	Pos  token.Position `yaml:"-"`
}

// ConfigurationSet is the ordered list of entries declared on one struct.
type ConfigurationSet struct {
	TypeName string  `yaml:"type"`
	Entries  []Entry `yaml:"entries"`
}

// Extract parses the directives of decl into a ConfigurationSet.
//
// Malformed directives are returned as diagnostics and yield a nil set. A
// declaration that is not a struct, or that declares no entries, yields a
// *diagnostic.FatalError.
func Extract(decl *analyze.StructDecl) (*ConfigurationSet, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	if decl.Shape != analyze.ShapeStruct {
		return nil, diags, diagnostic.Fatal(decl.Name, diagnostic.ErrUnsupportedShape)
	}

	set := &ConfigurationSet{TypeName: decl.Name}

	for _, d := range decl.Directives {
		if d.Text == analyze.DirectivePrefix {
			continue
		}

		item, rest := splitDirective(d.Text)

		switch item {
		case ItemWith:
			if entry, ok := parseEntry(rest, decl.Name, d.Pos, &diags); ok {
				set.Entries = append(set.Entries, entry)
			}
		case "":
			diags.AddError(diagnostic.CodeMalformedDirective,
				fmt.Sprintf("malformed directive %q", d.Text), decl.Name, d.Pos)
		default:
			diags.AddError(diagnostic.CodeUnknownItem,
				fmt.Sprintf("unknown item %q, expected %q", item, ItemWith), decl.Name, d.Pos)
		}
	}

	if diags.HasErrors() {
		return nil, diags, nil
	}

	if len(set.Entries) == 0 {
		return nil, diags, diagnostic.Fatal(decl.Name, diagnostic.ErrEmptyConfiguration)
	}

	return set, diags, nil
}

// parseEntry validates the arguments of one with item. All problems are
// reported; ok is false when any was found.
func parseEntry(args, typeName string, pos token.Position, diags *diagnostic.Diagnostics) (Entry, bool) {
	entry := Entry{Pos: pos}

	kvs, err := parseArgs(args)
	if err != nil {
		diags.AddError(diagnostic.CodeMalformedDirective, err.Error(), typeName, pos)
		return entry, false
	}

	ok := true
	seen := make(map[string]bool, len(kvs))

	for _, kv := range kvs {
		if kv.Key != KeyTy && kv.Key != KeyFunc {
			diags.AddError(diagnostic.CodeUnknownKey,
				fmt.Sprintf("unknown key %q, expected %q or %q", kv.Key, KeyTy, KeyFunc), typeName, pos)
			ok = false

			continue
		}

		if seen[kv.Key] {
			diags.AddError(diagnostic.CodeDuplicateKey,
				fmt.Sprintf("duplicate key %q", kv.Key), typeName, pos)
			ok = false

			continue
		}

		seen[kv.Key] = true

		p, err := ParsePath(kv.Value)
		if err != nil {
			diags.AddError(diagnostic.CodeInvalidPath,
				fmt.Sprintf("%s: %v", kv.Key, err), typeName, pos)
			ok = false

			continue
		}

		if kv.Key == KeyTy {
			entry.Ty = p
		} else {
			entry.Func = p
		}
	}

	for _, key := range []string{KeyTy, KeyFunc} {
		if !seen[key] {
			diags.AddError(diagnostic.CodeMissingKey,
				fmt.Sprintf("missing required key %q", key), typeName, pos)
			ok = false
		}
	}

	return entry, ok
}

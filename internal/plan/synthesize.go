package plan

import (
	"go/token"
	"unicode"
	"unicode/utf8"

	"struct-update/internal/analyze"
	"struct-update/internal/common"
	"struct-update/internal/diagnostic"
	"struct-update/internal/mapping"
	"struct-update/internal/match"
)

// fallbackReceivers are tried in order when the short receiver name is taken.
var fallbackReceivers = []string{"recv", "self", "this"}

// Synthesize builds the method plan of decl for the given configuration.
//
// Every field must be named: an embedded field is a fatal error, whether or
// not it would have matched. Fields whose type is not a bare named path are
// skipped silently.
func Synthesize(decl *analyze.StructDecl, set *mapping.ConfigurationSet) (*StructPlan, error) {
	if decl.Shape != analyze.ShapeStruct {
		return nil, diagnostic.Fatal(decl.Name, diagnostic.ErrUnsupportedShape)
	}

	if set == nil || common.IsEmpty(set.Entries) {
		return nil, diagnostic.Fatal(decl.Name, diagnostic.ErrEmptyConfiguration)
	}

	for i := range decl.Fields {
		if decl.Fields[i].Embedded {
			return nil, diagnostic.Fatal(decl.Name, diagnostic.ErrUnnamedField)
		}
	}

	p := &StructPlan{
		Decl:       decl,
		Config:     set,
		MethodName: methodName(decl),
	}

	used := make(map[string]bool)

	for i, entry := range set.Entries {
		fields := match.Fields(decl.Fields, entry.Ty)
		if len(fields) == 0 {
			p.Unused = append(p.Unused, i)
			continue
		}

		for _, f := range fields {
			p.Updates = append(p.Updates, Update{
				Field: f.Name,
				Func:  entry.Func.String(),
				Clone: f.HasClone,
				Entry: i,
			})
		}

		for _, name := range entry.Func.Names() {
			used[name] = true
		}

		for _, q := range entry.Func.Qualifiers() {
			p.addImport(decl, q)
		}
	}

	p.Receiver = receiverName(decl, used)

	return p, nil
}

// addImport records the declaring file's import named q, once. A qualifier
// that names no import (a method expression such as Celsius.Clamp) needs
// nothing.
func (p *StructPlan) addImport(decl *analyze.StructDecl, q string) {
	for _, imp := range p.Imports {
		if imp.Name == q {
			return
		}
	}

	for _, imp := range decl.Imports {
		if imp.Name == q {
			p.Imports = append(p.Imports, imp)
			return
		}
	}
}

func methodName(decl *analyze.StructDecl) string {
	if decl.Exported {
		return MethodName
	}

	return UnexportedMethodName
}

// receiverName picks the lower-cased first letter of the type name, unless
// it would shadow an identifier the method body refers to.
func receiverName(decl *analyze.StructDecl, used map[string]bool) string {
	taken := func(name string) bool {
		if used[name] || token.IsKeyword(name) {
			return true
		}

		for _, tp := range decl.TypeParams {
			if tp == name {
				return true
			}
		}

		return false
	}

	r, _ := utf8.DecodeRuneInString(decl.Name)
	if unicode.IsLetter(r) {
		if short := string(unicode.ToLower(r)); !taken(short) {
			return short
		}
	}

	for _, name := range fallbackReceivers {
		if !taken(name) {
			return name
		}
	}

	return "recv_"
}

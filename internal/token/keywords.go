package token

var keywords = map[string]struct{}{
	"auto": {}, "break": {}, "case": {}, "char": {}, "const": {}, "continue": {},
	"default": {}, "do": {}, "double": {}, "else": {}, "enum": {}, "extern": {},
	"float": {}, "for": {}, "goto": {}, "if": {}, "inline": {}, "int": {},
	"long": {}, "register": {}, "restrict": {}, "return": {}, "short": {},
	"signed": {}, "sizeof": {}, "static": {}, "struct": {}, "switch": {},
	"typedef": {}, "union": {}, "unsigned": {}, "void": {}, "volatile": {},
	"while": {},
	"_Alignas": {}, "_Alignof": {}, "_Atomic": {}, "_Bool": {}, "_Complex": {},
	"_Generic": {}, "_Imaginary": {}, "_Noreturn": {}, "_Static_assert": {},
	"_Thread_local": {},
}

// IsKeyword reports whether ident is a C keyword.
// Keywords are case-sensitive: "Int" is an identifier.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

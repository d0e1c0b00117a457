package decl

// Kind is the syntactic role under which a name was declared.
type Kind uint8

const (
	Variable Kind = iota
	StructTypeName
	StructFieldName
	TypedefName
	FunctionName
	MacroObject
	MacroFunction
	EnumTypeName
	EnumConstant
)

var kindNames = [...]string{
	Variable:        "variable",
	StructTypeName:  "struct",
	StructFieldName: "field",
	TypedefName:     "typedef",
	FunctionName:    "function",
	MacroObject:     "macro",
	MacroFunction:   "macro-function",
	EnumTypeName:    "enum",
	EnumConstant:    "enum-constant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		Variable, StructTypeName, StructFieldName, TypedefName, FunctionName,
		MacroObject, MacroFunction, EnumTypeName, EnumConstant,
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Scoped reports whether names of this kind live inside an enclosing type.
func (k Kind) Scoped() bool {
	return k == StructFieldName || k == EnumConstant
}

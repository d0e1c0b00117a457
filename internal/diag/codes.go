package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004
	LexTokenTooLong        Code = 1005
	LexUnterminatedChar    Code = 1006

	// Извлечение объявлений
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnbalancedDelimiter  Code = 2002
	SynAmbiguousDeclaration Code = 2003
	SynDirectiveMissingName Code = 2004

	// Ввод-вывод
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		LexInfo:                 "Lexical information",
		LexUnknownChar:          "Unknown character",
		LexUnterminatedString:   "Unterminated string literal",
		LexUnterminatedComment:  "Unterminated block comment",
		LexBadNumber:            "Invalid number literal",
		LexTokenTooLong:         "Token too long",
		LexUnterminatedChar:     "Unterminated character literal",
		SynInfo:                 "Syntax information",
		SynUnexpectedToken:      "Unexpected token",
		SynUnbalancedDelimiter:  "Unbalanced delimiter",
		SynAmbiguousDeclaration: "Ambiguous declaration",
		SynDirectiveMissingName: "Preprocessor directive without a name",
		IOLoadFileError:         "I/O load file error",
		IOCacheError:            "Result cache error",
		ObsInfo:                 "Observability information",
		ObsTimings:              "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package group

import (
	"convdup/internal/convention"
	"convdup/internal/decl"
)

// Member is one identifier together with its classification. Classification
// happens once, when the member is built.
type Member struct {
	decl.Identifier
	Tag   convention.Tag
	Words convention.Words
	// File is the display path of the declaring file.
	File string
}

// NewMember classifies id.
func NewMember(id decl.Identifier, file string) Member {
	tag, words := convention.Classify(id.Name)
	return Member{Identifier: id, Tag: tag, Words: words, File: file}
}

// Members classifies a batch of identifiers from one file.
func Members(ids []decl.Identifier, file string) []Member {
	out := make([]Member, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewMember(id, file))
	}
	return out
}

// key identifies a member within its partition. Unrecognized names only
// ever match their own exact spelling.
type key struct {
	text  string
	exact bool
}

func (m Member) key() key {
	if m.Tag == convention.Unrecognized {
		return key{text: m.Name, exact: true}
	}
	return key{text: m.Words.Key()}
}

// scopeOf canonicalises an enclosing type name the same way member names are.
func scopeOf(enclosing string) key {
	if enclosing == "" {
		return key{}
	}
	tag, words := convention.Classify(enclosing)
	if tag == convention.Unrecognized {
		return key{text: enclosing, exact: true}
	}
	return key{text: words.Key()}
}

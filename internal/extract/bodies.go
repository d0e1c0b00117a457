package extract

import (
	"convdup/internal/decl"
	"convdup/internal/token"
)

// parseRecord handles "struct|union [Tag] [{ fields }]" starting at the keyword.
// Field indices are returned unresolved; the caller decides their enclosing name.
func (p *parser) parseRecord() (string, []int) {
	p.pos++
	p.skipAttributes()

	var tag token.Token
	if p.peek().IsIdent() {
		tag = p.peek()
		p.pos++
	}
	p.skipAttributes()

	if !p.isPunct("{") {
		return tag.Text, nil
	}
	if tag.Text != "" {
		p.emit(tag, decl.StructTypeName)
	}
	body := &slot{}
	p.pos++
	p.parseScope(scopeStruct, body)
	if p.isPunct("}") {
		p.pos++
	}
	p.skipAttributes()
	return tag.Text, body.pending
}

// parseEnum handles "enum [Tag] [: type] [{ A [= expr], ... }]".
func (p *parser) parseEnum() (string, []int) {
	p.pos++
	p.skipAttributes()

	var tag token.Token
	if p.peek().IsIdent() {
		tag = p.peek()
		p.pos++
	}
	if p.isPunct(":") {
		// фиксированный базовый тип (C23)
		for !p.eof() && !p.isPunct("{") && !p.isPunct(";") {
			p.step()
		}
	}
	p.skipAttributes()

	if !p.isPunct("{") {
		return tag.Text, nil
	}
	if tag.Text != "" {
		p.emit(tag, decl.EnumTypeName)
	}
	var pending []int
	p.pos++
	for !p.eof() && !p.isPunct("}") {
		tok := p.peek()
		if !tok.IsIdent() {
			p.skipExpression()
			if p.isPunct(",") || p.isPunct(";") {
				p.pos++
			}
			continue
		}
		pending = append(pending, p.emit(tok, decl.EnumConstant))
		p.pos++
		p.skipAttributes()
		if p.isPunct("=") {
			p.pos++
			p.skipExpression()
		}
		if p.isPunct(",") {
			p.pos++
		} else if !p.isPunct("}") {
			p.skipExpression()
			if p.isPunct(",") || p.isPunct(";") {
				p.pos++
			}
		}
	}
	if p.isPunct("}") {
		p.pos++
	}
	p.skipAttributes()
	return tag.Text, pending
}

func (p *parser) skipAttributes() {
	for !p.eof() {
		tok := p.peek()
		if tok.IsKeyword("_Alignas") || (tok.IsIdent() && hasKey(attributeNames, tok.Text)) {
			p.pos++
			if p.isPunct("(") {
				p.skipGroup()
			}
			continue
		}
		return
	}
}

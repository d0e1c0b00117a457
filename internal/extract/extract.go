package extract

import (
	"slices"

	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/token"
)

// Options configures Extract.
type Options struct {
	// Reporter receives SYN diagnostics. May be nil.
	Reporter diag.Reporter
}

// Result holds the declared identifiers of one token stream in source order.
type Result struct {
	Identifiers []decl.Identifier
	// Truncated is set when an unmatched closing delimiter cut extraction short.
	Truncated bool
}

// Extract finds every recognisable declaration in toks.
// toks is usually the output of lexer.Tokenize; a trailing EOF is optional.
func Extract(toks []token.Token, opts Options) Result {
	p := &parser{rep: opts.Reporter}

	code := p.directives(toks)
	code, truncated := p.balance(code)

	p.toks = code
	p.end = len(code)
	p.parseScope(scopeFile, nil)

	slices.SortStableFunc(p.out, func(a, b decl.Identifier) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	return Result{Identifiers: p.out, Truncated: truncated}
}

type scope uint8

const (
	scopeFile scope = iota
	scopeBlock
	scopeStruct
)

// slot collects indices into parser.out whose Enclosing is not known yet.
// The owner fills them in once the enclosing type name has been seen.
type slot struct {
	pending []int
}

func (s *slot) add(idx ...int) {
	if s != nil {
		s.pending = append(s.pending, idx...)
	}
}

type parser struct {
	rep diag.Reporter

	toks  []token.Token // код без директив и комментариев, без EOF
	match []int         // match[i] для открывающей скобки: индекс закрывающей
	pos   int
	end   int

	out []decl.Identifier
}

func (p *parser) at(i int) token.Token {
	if i >= p.end || i < 0 {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *parser) peek() token.Token { return p.at(p.pos) }

func (p *parser) eof() bool { return p.pos >= p.end }

func (p *parser) isPunct(s string) bool { return p.peek().IsPunct(s) }

// skipGroup steps over the bracketed group that opens at the current token.
func (p *parser) skipGroup() {
	closer := p.match[p.pos]
	if closer < 0 || closer >= p.end {
		p.pos = p.end
		return
	}
	p.pos = closer + 1
}

func (p *parser) emit(tok token.Token, kind decl.Kind) int {
	p.out = append(p.out, decl.Identifier{
		Name: tok.Text,
		Kind: kind,
		Span: tok.Span,
		Pos:  tok.Pos,
	})
	return len(p.out) - 1
}

// resolve assigns enclosing to every pending index. An empty name hands the
// indices to the parent slot instead (anonymous nested bodies).
func (p *parser) resolve(pending []int, enclosing string, parent *slot) {
	if enclosing == "" {
		parent.add(pending...)
		return
	}
	for _, idx := range pending {
		p.out[idx].Enclosing = enclosing
	}
}

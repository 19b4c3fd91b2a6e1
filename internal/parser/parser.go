package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/kolkov/minil/internal/ast"
	"github.com/kolkov/minil/internal/lexer"
	"github.com/kolkov/minil/internal/semantic"
	"github.com/kolkov/minil/internal/token"
	"github.com/kolkov/minil/internal/trace"
	"github.com/kolkov/minil/internal/types"
)

// Parser is a recursive descent parser for minil programs.
//
// Parsing and name resolution happen in one pass: the parser opens and
// closes scopes on the shared SymbolTable as it meets block delimiters,
// declares variables as it meets declarations, and stores resolved slot
// ids in the tree. It stops at the first error.
type Parser struct {
	toks    []lexer.Token         // Token stream, always terminated by EOF
	cur     int                   // Index of the current token
	symbols *semantic.SymbolTable // Scopes and slots, shared with the interpreter
	log     logrus.FieldLogger    // Diagnostic sink

	opens []token.Position // Positions of the "{" of every open block
}

// Parse tokenizes and parses a minil program.
// Declarations are recorded in symbols; log may be nil.
func Parse(src string, symbols *semantic.SymbolTable, log logrus.FieldLogger) (*ast.Block, error) {
	return ParseTokens(lexer.Tokenize(src), symbols, log)
}

// ParseTokens parses an already scanned token stream.
func ParseTokens(toks []lexer.Token, symbols *semantic.SymbolTable, log logrus.FieldLogger) (*ast.Block, error) {
	return New(toks, symbols, log).ParseProgram()
}

// New creates a parser over toks. A missing EOF terminator is added.
func New(toks []lexer.Token, symbols *semantic.SymbolTable, log logrus.FieldLogger) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Type != token.EOF {
		eof := lexer.Token{Type: token.EOF, Pos: token.Position{Line: 1, Column: 1}}
		if n > 0 {
			eof.Pos = toks[n-1].Pos.Advance(toks[n-1].Value)
		}
		toks = append(toks[:n:n], eof)
	}
	return &Parser{
		toks:    toks,
		symbols: symbols,
		log:     trace.OrDiscard(log),
	}
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// tok returns the current token.
func (p *Parser) tok() lexer.Token {
	return p.toks[p.cur]
}

// next advances to the next token. The cursor never moves past EOF.
func (p *Parser) next() {
	if p.toks[p.cur].Type != token.EOF {
		p.cur++
	}
}

// at reports whether the current token is of type t.
func (p *Parser) at(t token.Token) bool {
	return p.toks[p.cur].Type == t
}

// lastPos returns the position of the most recently consumed token.
func (p *Parser) lastPos() token.Position {
	if p.cur == 0 {
		return token.NoPos
	}
	return p.toks[p.cur-1].Pos
}

// expect checks that the current token is t and advances past it.
// want describes the expected token for the error message.
func (p *Parser) expect(t token.Token, want string) (lexer.Token, error) {
	tok := p.tok()
	if tok.Type != t {
		return tok, expectedError(tok, p.lastPos(), want)
	}
	p.next()
	return tok, nil
}

// -----------------------------------------------------------------------------
// Program and statement parsing
// -----------------------------------------------------------------------------

// ParseProgram parses the whole token stream into the root block.
// The root scope is opened first and closed last; every block opened in
// between must be closed exactly once.
func (p *Parser) ParseProgram() (*ast.Block, error) {
	base := p.symbols.Depth()
	p.symbols.PushScope()

	root := &ast.Block{StartPos: p.tok().Pos}
	for !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			root.Stmts = append(root.Stmts, stmt)
		}
	}
	root.EndPos = p.tok().Pos

	if n := len(p.opens); n > 0 {
		open := p.opens[n-1]
		return nil, unbalanced(open, "block opened on line %d is never closed", open.Line)
	}
	if err := p.symbols.PopScope(); err != nil {
		return nil, err
	}
	if d := p.symbols.Depth(); d != base {
		return nil, unbalanced(root.EndPos, "%d scope(s) still open at end of input", d-base)
	}
	return root, nil
}

// parseStatement parses one statement. It returns a nil Stmt for tokens
// that produce no node (";" and "}").
func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.tok()
	p.log.WithFields(logrus.Fields{
		"token":  tok.Type.String(),
		"lexeme": tok.Value,
		"line":   tok.Line(),
	}).Debug("parse statement")

	switch tok.Type {
	case token.VAR:
		return p.parseDeclaration()

	case token.PRINT:
		return p.parsePrint()

	case token.NAME:
		return p.parseAssignment()

	case token.LBRACE:
		return p.parseBlock()

	case token.RBRACE:
		return nil, p.closeScope()

	case token.SEMICOLON:
		p.next()
		return nil, nil

	case token.ILLEGAL:
		return nil, errorf(tok.Pos, "unexpected character %q", tok.Value)

	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock parses a { } block. The block's scope is opened here and
// closed by the matching "}" in parseStatement; the loop runs until the
// scope depth drops back below the block's own.
func (p *Parser) parseBlock() (*ast.Block, error) {
	open := p.tok()
	p.next() // consume '{'

	p.symbols.PushScope()
	p.opens = append(p.opens, open.Pos)
	depth := p.symbols.Depth()

	block := &ast.Block{StartPos: open.Pos}
	for p.symbols.Depth() >= depth {
		if p.at(token.EOF) {
			return nil, unbalanced(open.Pos, "block opened on line %d is never closed", open.Pos.Line)
		}
		if p.at(token.RBRACE) && p.symbols.Depth() == depth {
			block.EndPos = p.tok().Pos
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	return block, nil
}

// closeScope handles "}": it pops the innermost block scope.
func (p *Parser) closeScope() error {
	tok := p.tok()
	if len(p.opens) == 0 {
		return unbalanced(tok.Pos, "unexpected \"}\" with no open block")
	}
	p.log.WithFields(logrus.Fields{
		"depth":    p.symbols.Depth(),
		"declared": p.symbols.Scope().Names(),
		"line":     tok.Line(),
	}).Debug("close scope")
	if err := p.symbols.PopScope(); err != nil {
		return err
	}
	p.opens = p.opens[:len(p.opens)-1]
	p.next() // consume '}'
	return nil
}

// parseDeclaration parses "var name;" or "var name = expr;".
// The name is declared before the initializer is parsed.
func (p *Parser) parseDeclaration() (ast.Stmt, error) {
	kw := p.tok()
	p.next() // consume 'var'

	name, err := p.expect(token.NAME, "variable name after \"var\"")
	if err != nil {
		return nil, err
	}
	slot, err := p.symbols.Declare(name.Value, name.Pos)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"name": name.Value,
		"slot": slot,
		"line": name.Line(),
	}).Debug("declare")

	switch tok := p.tok(); tok.Type {
	case token.SEMICOLON:
		p.next()
		return &ast.Empty{StartPos: kw.Pos}, nil
	case token.ASSIGN:
		p.next()
		target := &ast.Var{NamePos: name.Pos, Name: name.Value, Slot: slot}
		return p.finishAssign(kw.Pos, target)
	case token.EOF:
		return nil, expectedError(tok, p.lastPos(), "\";\" or \"=\" after declaration")
	default:
		return nil, errorf(tok.Pos, "declaration must be followed by \";\" or \"=\", got %s", tokenDesc(tok))
	}
}

// parseAssignment parses "name = expr;".
func (p *Parser) parseAssignment() (ast.Stmt, error) {
	id := p.tok()
	p.next() // consume name

	if _, err := p.expect(token.ASSIGN, "\"=\" after "+tokenDesc(id)); err != nil {
		return nil, err
	}
	slot, err := p.symbols.Resolve(id.Value, id.Pos)
	if err != nil {
		return nil, err
	}
	target := &ast.Var{NamePos: id.Pos, Name: id.Value, Slot: slot}
	return p.finishAssign(id.Pos, target)
}

// finishAssign parses the right-hand side and the terminating ";".
func (p *Parser) finishAssign(start token.Position, target *ast.Var) (*ast.Assign, error) {
	src, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "\";\" after assignment"); err != nil {
		return nil, err
	}
	return &ast.Assign{StartPos: start, Target: target, Source: src}, nil
}

// parsePrint parses "print(expr, expr, ...)".
func (p *Parser) parsePrint() (*ast.Print, error) {
	kw := p.tok()
	p.next() // consume 'print'

	if _, err := p.expect(token.LPAREN, "\"(\" after \"print\""); err != nil {
		return nil, err
	}

	node := &ast.Print{StartPos: kw.Pos}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Args = append(node.Args, arg)
		if !p.at(token.COMMA) {
			break
		}
		p.next()
	}

	if _, err := p.expect(token.RPAREN, "\")\" or \",\" in print"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseExpressionStatement parses a bare expression used as a statement.
// It must consume at least one token.
func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	tok := p.tok()
	start := p.cur
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur == start {
		return nil, errorf(tok.Pos, "unexpected %s", tokenDesc(tok))
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Expression parsing
// -----------------------------------------------------------------------------

// parseExpression parses a single term and wraps it in an Expr.
func (p *Parser) parseExpression() (*ast.Expr, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return ast.NewExpr(term), nil
}

// parseTerm parses a variable reference or a numeric literal. Any other
// token yields an Empty placeholder; tokens that can follow an expression
// are left for the caller, the rest are consumed.
func (p *Parser) parseTerm() (ast.Term, error) {
	tok := p.tok()
	switch tok.Type {
	case token.NAME:
		slot, err := p.symbols.Resolve(tok.Value, tok.Pos)
		if err != nil {
			return nil, err
		}
		p.next()
		return &ast.Var{NamePos: tok.Pos, Name: tok.Value, Slot: slot}, nil

	case token.NUMBER:
		n, err := types.ParseNum(tok.Value)
		if err != nil {
			return nil, errorf(tok.Pos, "malformed number %q", tok.Value)
		}
		p.next()
		return &ast.Value{ValuePos: tok.Pos, Literal: tok.Value, Value: n}, nil

	case token.ILLEGAL:
		return nil, errorf(tok.Pos, "unexpected character %q", tok.Value)

	case token.SEMICOLON, token.RPAREN, token.COMMA, token.LBRACE, token.RBRACE, token.EOF:
		return &ast.Empty{StartPos: tok.Pos}, nil

	default:
		p.next()
		return &ast.Empty{StartPos: tok.Pos}, nil
	}
}

package graql

import "fmt"

// ParseQuery parses text as exactly one query, failing with KindEmptyInput
// on blank input and KindMultipleQueries if more than one query is present
// (§6.1, §7).
func ParseQuery(text string) (Query, error) {
	queries, err := ParseQueryList(text)
	if err != nil {
		return nil, err
	}
	if len(queries) == 0 {
		return nil, &Error{Kind: KindEmptyInput, Message: "query text is empty"}
	}
	if len(queries) > 1 {
		return nil, &Error{Kind: KindMultipleQueries, Message: "expected exactly one query"}
	}
	return queries[0], nil
}

// ParseQueryList parses text as zero or more queries in sequence. It is the
// stack-safe list-parse path required by §5 for ≥10,000-query inputs: the
// loop below is iterative, so input length bounds heap allocation only, not
// goroutine stack depth.
func ParseQueryList(text string) ([]Query, error) {
	toks, err := newLexer(text).tokenize()
	if err != nil {
		return nil, diagnosticError(text, err)
	}
	p := &parser{toks: toks, src: text}
	var queries []Query
	for !p.at(TokEOF) {
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// ParsePattern parses text as a single pattern, accepting either a bare
// statement or a `{ ... }`-enclosed block (§6.1).
func ParsePattern(text string) (Pattern, error) {
	patterns, err := ParsePatternList(text)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, &Error{Kind: KindEmptyInput, Message: "pattern text is empty"}
	}
	if len(patterns) > 1 {
		return nil, &Error{Kind: KindMultipleQueries, Message: "expected exactly one pattern"}
	}
	return patterns[0], nil
}

// ParsePatternList parses text as zero or more semicolon-terminated
// patterns.
func ParsePatternList(text string) ([]Pattern, error) {
	toks, err := newLexer(text).tokenize()
	if err != nil {
		return nil, diagnosticError(text, err)
	}
	p := &parser{toks: toks, src: text}
	var patterns []Pattern
	for !p.at(TokEOF) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctSemicolon); err != nil {
			return nil, err
		}
		patterns = append(patterns, pat)
	}
	return patterns, nil
}

// diagnosticError re-renders a lexer-level illegalCharError as a KindSyntax
// *Error carrying the caret rendering already produced by the lexer (§6.3).
func diagnosticError(source string, err error) error {
	if ic, ok := err.(*illegalCharError); ok {
		return &Error{Kind: KindSyntax, Line: ic.line, Col: ic.col, Message: ic.Error()}
	}
	return err
}

// parser is a hand-written recursive-descent parser over the flat token
// slice produced by the lexer. Per §4.2/§9 the reference grammar uses a
// fast bail-out pass followed by a diagnostic ambiguity-detecting pass;
// this implementation unifies the two (permitted by §9's "implementations
// may unify them if they can offer both properties with one parser") since
// a hand-written descent parser fails fast by construction and every error
// path already carries full position context.
type parser struct {
	toks []Token
	pos  int
	src  string
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) at(k TokenKind) bool {
	return p.peek().Kind == k
}

func (p *parser) atPunct(s string) bool {
	t := p.peek()
	return t.Kind == TokPunct && t.Text == s
}

func (p *parser) atKeyword(k Keyword) bool {
	t := p.peek()
	return t.Kind == TokKeyword && t.Text == string(k)
}

func (p *parser) atIdent(text string) bool {
	t := p.peek()
	return t.Kind == TokIdentifier && t.Text == text
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expectPunct(s string) error {
	if !p.atPunct(s) {
		return p.syntaxError([]string{s})
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(k Keyword) error {
	if !p.atKeyword(k) {
		return p.syntaxError([]string{string(k)})
	}
	p.advance()
	return nil
}

func (p *parser) syntaxError(expected []string) error {
	t := p.peek()
	msg := fmt.Sprintf("unexpected %s %q", t.Kind, t.Text)
	return newSyntaxError(p.src, t.Line, t.Col, expected, msg)
}

// parseQuery dispatches on the leading command keyword (§4.2 eof_query).
func (p *parser) parseQuery() (Query, error) {
	switch {
	case p.atKeyword(KeywordDefine):
		return p.parseDefine()
	case p.atKeyword(KeywordUndefine):
		return p.parseUndefine()
	case p.atKeyword(KeywordCompute):
		return p.parseCompute()
	case p.atKeyword(KeywordInsert):
		return p.parseBareInsert()
	case p.atKeyword(KeywordMatch):
		return p.parseMatchChain()
	}
	return nil, p.syntaxError([]string{"define", "undefine", "compute", "insert", "match"})
}

func (p *parser) parseDefine() (Query, error) {
	p.advance()
	stmts, err := p.parseStatementsUntilCommand()
	if err != nil {
		return nil, err
	}
	for _, s := range stmts {
		if s.Find("when") != nil || s.Find("then") != nil {
			if _, err := NewRule(s); err != nil {
				return nil, err
			}
		}
	}
	return &Define{Statements: stmts}, nil
}

func (p *parser) parseUndefine() (Query, error) {
	p.advance()
	stmts, err := p.parseStatementsUntilCommand()
	if err != nil {
		return nil, err
	}
	return &Undefine{Statements: stmts}, nil
}

func (p *parser) parseBareInsert() (Query, error) {
	p.advance()
	stmts, err := p.parseStatementsUntilCommand()
	if err != nil {
		return nil, err
	}
	return &Insert{Statements: stmts}, nil
}

// parseMatchChain parses a `match` block and whatever follows it: insert,
// delete, or a get (optionally continued into aggregate/group suffixes),
// §3 Queries.
func (p *parser) parseMatchChain() (Query, error) {
	p.advance()
	patterns, err := p.parsePatternsUntilCommand()
	if err != nil {
		return nil, err
	}
	match := &MatchClause{Patterns: patterns}

	switch {
	case p.atKeyword(KeywordInsert):
		p.advance()
		stmts, err := p.parseStatementsUntilCommand()
		if err != nil {
			return nil, err
		}
		return &Insert{Match: match, Statements: stmts}, nil
	case p.atKeyword(KeywordDelete):
		p.advance()
		stmts, err := p.parseStatementsUntilCommand()
		if err != nil {
			return nil, err
		}
		return &Delete{Match: *match, Statements: stmts}, nil
	case p.atKeyword(KeywordGet):
		return p.parseGetChain(match)
	}
	return nil, p.syntaxError([]string{"insert", "delete", "get"})
}

func (p *parser) parseGetChain(match *MatchClause) (Query, error) {
	get, err := p.parseGet(match)
	if err != nil {
		return nil, err
	}
	if err := ValidateGet(get); err != nil {
		return nil, err
	}

	switch {
	case p.at(TokEOF) || p.atPunct(";"):
		return get, nil
	case isAggregateToken(p.peek()):
		method, err := resolveAggregateMethod(p.peek().Text)
		if err != nil {
			return nil, err
		}
		p.advance()
		var v *Variable
		if method != AggregateCount {
			v, err = p.parseVariableRef()
			if err != nil {
				return nil, err
			}
		}
		if err := p.expectPunct(PunctSemicolon); err != nil {
			return nil, err
		}
		return &Aggregate{Get: get, Method: method, Variable: v}, nil
	case p.atKeyword(KeywordGroup):
		p.advance()
		groupVar, err := p.parseVariableRef()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctSemicolon); err != nil {
			return nil, err
		}
		group := &Group{Get: get, Variable: groupVar}
		if isAggregateToken(p.peek()) {
			method, err := resolveAggregateMethod(p.peek().Text)
			if err != nil {
				return nil, err
			}
			p.advance()
			var av *Variable
			if method != AggregateCount {
				av, err = p.parseVariableRef()
				if err != nil {
					return nil, err
				}
			}
			if err := p.expectPunct(PunctSemicolon); err != nil {
				return nil, err
			}
			return &GroupAggregate{Group: group, Method: method, Variable: av}, nil
		}
		return group, nil
	}
	return get, nil
}

func isAggregateToken(t Token) bool {
	if t.Kind != TokIdentifier && t.Kind != TokKeyword {
		return false
	}
	_, ok := aggregateMethods[t.Text]
	return ok
}

// parseGet parses the `get [vars];` clause and its trailing sort/offset/
// limit modifiers (§3, §4.2).
func (p *parser) parseGet(match *MatchClause) (*Get, error) {
	if err := p.expectKeyword(KeywordGet); err != nil {
		return nil, err
	}
	get := &Get{Match: *match, Offset: -1, Limit: -1}
	seen := map[string]bool{}
	if !p.atPunct(PunctSemicolon) {
		for {
			v, err := p.parseVariableRef()
			if err != nil {
				return nil, err
			}
			if k := namedKey(v); !seen[k] {
				seen[k] = true
				get.Filter = append(get.Filter, v)
			}
			if p.atPunct(PunctComma) {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(PunctSemicolon); err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atKeyword(KeywordSort):
			p.advance()
			v, err := p.parseVariableRef()
			if err != nil {
				return nil, err
			}
			order := Order("")
			if p.atIdent(string(OrderAsc)) || p.atIdent(string(OrderDesc)) {
				order = Order(p.advance().Text)
			}
			get.Sort = &Sort{Variable: v, Order: order}
			if err := p.expectPunct(PunctSemicolon); err != nil {
				return nil, err
			}
		case p.atKeyword(KeywordOffset):
			p.advance()
			n, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			get.Offset = n
			if err := p.expectPunct(PunctSemicolon); err != nil {
				return nil, err
			}
		case p.atKeyword(KeywordLimit):
			p.advance()
			n, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			get.Limit = n
			if err := p.expectPunct(PunctSemicolon); err != nil {
				return nil, err
			}
		default:
			return get, nil
		}
	}
}

func (p *parser) parseIntLiteral() (int64, error) {
	if !p.at(TokInteger) {
		return 0, p.syntaxError([]string{"integer"})
	}
	t := p.advance()
	var n int64
	_, err := fmt.Sscanf(t.Text, "%d", &n)
	if err != nil {
		return 0, newSyntaxError(p.src, t.Line, t.Col, []string{"integer"}, fmt.Sprintf("malformed integer %q", t.Text))
	}
	return n, nil
}

func (p *parser) parseVariableRef() (*Variable, error) {
	if !p.at(TokVariable) {
		return nil, p.syntaxError([]string{"variable"})
	}
	t := p.advance()
	return variableFromToken(t), nil
}

func variableFromToken(t Token) *Variable {
	if t.Text == "$_" {
		return NewAnonymous()
	}
	if len(t.Text) > 0 && t.Text[0] == '?' {
		return NewNamedValue(t.Text[1:])
	}
	return NewNamedConcept(t.Text[1:])
}

// parseStatementsUntilCommand parses `statement ("," constraint)* ";"`
// blocks back to back until a command keyword or EOF closes the list.
func (p *parser) parseStatementsUntilCommand() ([]*Statement, error) {
	var stmts []*Statement
	for !p.atCommandBoundary() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctSemicolon); err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *parser) atCommandBoundary() bool {
	if p.at(TokEOF) {
		return true
	}
	t := p.peek()
	if t.Kind != TokKeyword {
		return false
	}
	switch Keyword(t.Text) {
	case KeywordMatch, KeywordInsert, KeywordDelete, KeywordGet, KeywordDefine, KeywordUndefine, KeywordCompute:
		return true
	}
	return false
}

// parsePatternsUntilCommand parses semicolon-terminated patterns until a
// command keyword closes the match block.
func (p *parser) parsePatternsUntilCommand() ([]Pattern, error) {
	var patterns []Pattern
	for !p.atCommandBoundary() {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctSemicolon); err != nil {
			return nil, err
		}
		patterns = append(patterns, pat)
	}
	return patterns, nil
}

// parsePattern parses one top-level pattern: a negation, a disjunction of
// braced blocks, a bare braced conjunction, or a bare statement (§4.6).
func (p *parser) parsePattern() (Pattern, error) {
	switch {
	case p.atKeyword(KeywordNot):
		p.advance()
		inner, err := p.parseBracedConjunction()
		if err != nil {
			return nil, err
		}
		return not(inner), nil
	case p.atPunct(PunctBraceOpen):
		first, err := p.parseBracedConjunction()
		if err != nil {
			return nil, err
		}
		if !p.atKeyword(KeywordOr) {
			return first, nil
		}
		branches := []Pattern{first}
		for p.atKeyword(KeywordOr) {
			p.advance()
			branch, err := p.parseBracedConjunction()
			if err != nil {
				return nil, err
			}
			branches = append(branches, branch)
		}
		return or(branches)
	}
	return p.parseStatement()
}

func (p *parser) parseBracedConjunction() (Pattern, error) {
	if err := p.expectPunct(PunctBraceOpen); err != nil {
		return nil, err
	}
	var patterns []Pattern
	for !p.atPunct(PunctBraceClose) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctSemicolon); err != nil {
			return nil, err
		}
		patterns = append(patterns, pat)
	}
	p.advance() // '}'
	if len(patterns) == 0 {
		return &Conjunction{}, nil
	}
	return and(patterns), nil
}

// parseStatement parses one statement: a head reference followed by a
// comma-separated constraint list (§3 Statements, §4.3).
func (p *parser) parseStatement() (*Statement, error) {
	head, headIsLabel, err := p.parseHeadRef()
	if err != nil {
		return nil, err
	}
	stmt := NewStatement(StatementThing, head)
	var sawRelation, sawSchema, sawValue bool
	first := true
	prevWasRelation := false
	for {
		if !first {
			switch {
			case p.atPunct(PunctComma):
				p.advance()
			case prevWasRelation && p.constraintStartsHere():
				// a relation's role-player list may be followed directly by
				// `isa ...` with no separating comma, e.g. `(r: $x) isa y;`
			default:
				goto done
			}
		}
		if !p.constraintStartsHere() {
			if first {
				goto done
			}
			return nil, p.syntaxError([]string{"constraint"})
		}
		{
			c, kind, err := p.parseOneConstraint()
			if err != nil {
				return nil, err
			}
			if err := stmt.AddConstraint(c); err != nil {
				return nil, err
			}
			switch kind {
			case "relation":
				sawRelation = true
			case "schema":
				sawSchema = true
			case "value":
				sawValue = true
			}
			prevWasRelation = kind == "relation"
		}
		first = false
	}
done:
	switch {
	case sawRelation:
		stmt.Variant = StatementRelation
	case headIsLabel || sawSchema:
		stmt.Variant = StatementType
	case sawValue:
		stmt.Variant = StatementAttribute
	default:
		stmt.Variant = StatementThing
	}
	return stmt, nil
}

// parseHeadRef parses a statement's head: a variable, or a (possibly
// scoped) label. Reports whether the head was a bare label, which feeds the
// statement-variant inference in parseStatement.
func (p *parser) parseHeadRef() (*Variable, bool, error) {
	if p.at(TokVariable) {
		return variableFromToken(p.advance()), false, nil
	}
	if p.at(TokIdentifier) {
		label, err := p.parseLabel()
		if err != nil {
			return nil, false, err
		}
		return NewLabel(label.Name, label.Scope), true, nil
	}
	if p.atPunct(PunctParenOpen) {
		return NewAnonymous(), false, nil
	}
	return nil, false, p.syntaxError([]string{"variable", "label"})
}

func (p *parser) parseLabel() (Label, error) {
	if !p.at(TokIdentifier) {
		return Label{}, p.syntaxError([]string{"label"})
	}
	first := p.advance().Text
	if p.atPunct(PunctColon) {
		p.advance()
		if !p.at(TokIdentifier) {
			return Label{}, p.syntaxError([]string{"label"})
		}
		return Label{Scope: first, Name: p.advance().Text}, nil
	}
	return Label{Name: first}, nil
}

// constraintStartsHere reports whether the current token can begin a
// constraint, used to decide whether a statement has any constraints at
// all (a bare `$x;` statement is legal).
func (p *parser) constraintStartsHere() bool {
	t := p.peek()
	if t.Kind == TokKeyword {
		switch Keyword(t.Text) {
		case KeywordIsa, KeywordIsaX, KeywordSub, KeywordSubX, KeywordHas, KeywordKey, KeywordPlays,
			KeywordRelates, KeywordRegex, KeywordValue, KeywordAbstract, KeywordType, KeywordWhen,
			KeywordThen, KeywordId:
			return true
		}
		return false
	}
	if t.Kind == TokComparator {
		return true
	}
	if t.Kind == TokIdentifier && (t.Text == "contains" || t.Text == "like") {
		return true
	}
	if t.Kind == TokPunct && t.Text == PunctParenOpen {
		return true
	}
	switch t.Kind {
	case TokInteger, TokReal, TokString, TokDate, TokDateTime:
		return true
	}
	return false
}

// parseOneConstraint parses a single constraint and classifies it for the
// caller's variant-inference bookkeeping ("relation", "schema", "value", or
// "" for constraints that don't influence variant choice).
func (p *parser) parseOneConstraint() (Constraint, string, error) {
	t := p.peek()

	if t.Kind == TokPunct && t.Text == PunctParenOpen {
		c, err := p.parseRelationConstraint()
		return c, "relation", err
	}

	if t.Kind == TokComparator || t.Kind == TokInteger || t.Kind == TokReal || t.Kind == TokString ||
		t.Kind == TokDate || t.Kind == TokDateTime ||
		(t.Kind == TokIdentifier && (t.Text == "contains" || t.Text == "like")) {
		c, err := p.parseValueConstraintOrNeq()
		return c, "value", err
	}

	switch Keyword(t.Text) {
	case KeywordIsa, KeywordIsaX:
		p.advance()
		typ, err := p.parseEmbeddedStatement()
		if err != nil {
			return nil, "", err
		}
		return Isa{Type: typ, Exact: Keyword(t.Text) == KeywordIsaX}, "", nil
	case KeywordSub, KeywordSubX:
		p.advance()
		typ, err := p.parseEmbeddedStatement()
		if err != nil {
			return nil, "", err
		}
		return Sub{Type: typ, Strict: Keyword(t.Text) == KeywordSubX}, "schema", nil
	case KeywordHas, KeywordKey:
		isKey := Keyword(t.Text) == KeywordKey
		p.advance()
		label, err := p.parseLabel()
		if err != nil {
			return nil, "", err
		}
		if p.at(TokVariable) {
			v, _ := p.parseVariableRef()
			return expandHasVariable(label, v, isKey), "", nil
		}
		val, err := p.parseLiteralValue()
		if err != nil {
			return nil, "", err
		}
		return expandHasShorthand(label, val, isKey), "", nil
	case KeywordPlays:
		p.advance()
		role, err := p.parseEmbeddedStatement()
		if err != nil {
			return nil, "", err
		}
		return Plays{RoleType: role}, "schema", nil
	case KeywordRelates:
		p.advance()
		role, err := p.parseEmbeddedStatement()
		if err != nil {
			return nil, "", err
		}
		var overridden *Statement
		if p.atKeyword(KeywordAs) {
			p.advance()
			ov, err := p.parseEmbeddedStatement()
			if err != nil {
				return nil, "", err
			}
			overridden = &ov
		}
		return Relates{RoleType: role, Overridden: overridden}, "schema", nil
	case KeywordRegex:
		p.advance()
		if !p.at(TokString) {
			return nil, "", p.syntaxError([]string{"string"})
		}
		text, err := unescapeRegex(p.advance().Text)
		if err != nil {
			return nil, "", err
		}
		return Regex{Pattern: text}, "schema", nil
	case KeywordValue:
		p.advance()
		if !p.at(TokIdentifier) {
			return nil, "", p.syntaxError([]string{"value type"})
		}
		kind, err := resolveValueTypeKind(p.advance().Text)
		if err != nil {
			return nil, "", err
		}
		return ValueTypeConstraint{Kind: kind}, "schema", nil
	case KeywordAbstract:
		p.advance()
		return Abstract{}, "schema", nil
	case KeywordType:
		p.advance()
		label, err := p.parseLabel()
		if err != nil {
			return nil, "", err
		}
		return LabelConstraint{Label: label}, "schema", nil
	case KeywordWhen:
		p.advance()
		pat, err := p.parseBracedConjunction()
		if err != nil {
			return nil, "", err
		}
		return When{Pattern: pat}, "schema", nil
	case KeywordThen:
		p.advance()
		if err := p.expectPunct(PunctBraceOpen); err != nil {
			return nil, "", err
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, "", err
		}
		if err := p.expectPunct(PunctSemicolon); err != nil {
			return nil, "", err
		}
		if err := p.expectPunct(PunctBraceClose); err != nil {
			return nil, "", err
		}
		return Then{Statement: *s}, "schema", nil
	case KeywordId:
		p.advance()
		lit := p.advance().Text
		return IdConstraint{Literal: lit}, "", nil
	}
	return nil, "", p.syntaxError([]string{"constraint"})
}

// parseValueConstraintOrNeq disambiguates between a ValueConstraint
// comparison and a NeqVar: `!==` followed by a variable is variable
// inequality (tag "neq"); every other comparator/literal form is a value
// comparison or assignment (§4.3).
func (p *parser) parseValueConstraintOrNeq() (Constraint, error) {
	t := p.peek()
	if t.Kind == TokComparator {
		cmp, err := normalizeComparator(t.Text)
		if err != nil {
			return nil, err
		}
		if cmp == ComparatorNeq && p.toks[p.pos+1].Kind == TokVariable {
			p.advance()
			v, err := p.parseVariableRef()
			if err != nil {
				return nil, err
			}
			return NeqVar{Other: v}, nil
		}
		p.advance()
		if p.at(TokVariable) {
			v, err := p.parseVariableRef()
			if err != nil {
				return nil, err
			}
			return ValueConstraint{Operation: Comparison{Comparator: cmp, Variable: v}}, nil
		}
		val, err := p.parseLiteralValue()
		if err != nil {
			return nil, err
		}
		return ValueConstraint{Operation: Comparison{Comparator: cmp, Value: &val}}, nil
	}
	if t.Kind == TokIdentifier && t.Text == "contains" {
		p.advance()
		if !p.at(TokString) {
			return nil, p.syntaxError([]string{"string"})
		}
		s, err := unquoteString(p.advance().Text)
		if err != nil {
			return nil, err
		}
		sv := StringValue(s)
		return ValueConstraint{Operation: Comparison{Comparator: ComparatorContains, Value: &sv}}, nil
	}
	if t.Kind == TokIdentifier && t.Text == "like" {
		p.advance()
		if !p.at(TokString) {
			return nil, p.syntaxError([]string{"string"})
		}
		pattern, err := unescapeRegex(p.advance().Text)
		if err != nil {
			return nil, err
		}
		return ValueConstraint{Operation: Comparison{Comparator: ComparatorLike, Pattern: pattern}}, nil
	}
	val, err := p.parseLiteralValue()
	if err != nil {
		return nil, err
	}
	return ValueConstraint{Operation: Assignment{Value: val}}, nil
}

func (p *parser) parseLiteralValue() (Value, error) {
	t := p.peek()
	switch t.Kind {
	case TokInteger:
		p.advance()
		var n int64
		if _, err := fmt.Sscanf(t.Text, "%d", &n); err != nil {
			return Value{}, newSyntaxError(p.src, t.Line, t.Col, []string{"integer"}, fmt.Sprintf("malformed integer %q", t.Text))
		}
		return LongValue(n), nil
	case TokReal:
		p.advance()
		var f float64
		if _, err := fmt.Sscanf(t.Text, "%g", &f); err != nil {
			return Value{}, newSyntaxError(p.src, t.Line, t.Col, []string{"real"}, fmt.Sprintf("malformed real %q", t.Text))
		}
		return DoubleValue(f), nil
	case TokString:
		p.advance()
		s, err := unquoteString(t.Text)
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case TokDate:
		p.advance()
		d, err := parseDate(t.Text)
		if err != nil {
			return Value{}, err
		}
		return DateTimeValue(d), nil
	case TokDateTime:
		p.advance()
		d, err := parseDateTime(t.Text)
		if err != nil {
			return Value{}, err
		}
		return DateTimeValue(d), nil
	case TokKeyword:
		if t.Text == string(KeywordTrue) || t.Text == string(KeywordFalse) {
			p.advance()
			return BoolValue(t.Text == string(KeywordTrue)), nil
		}
	}
	return Value{}, p.syntaxError([]string{"value"})
}

// parseEmbeddedStatement parses an inline type/role reference appearing
// after isa/sub/plays/relates: a bare label or a variable, no nested
// constraints (those belong to the variable's own top-level statement).
func (p *parser) parseEmbeddedStatement() (Statement, error) {
	if p.at(TokVariable) {
		v, err := p.parseVariableRef()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Head: v}, nil
	}
	// `rule` lexes as a keyword but names the root rule type in `sub rule`.
	if p.atKeyword(KeywordRule) {
		p.advance()
		return Statement{Head: NewLabel(string(KeywordRule), "")}, nil
	}
	label, err := p.parseLabel()
	if err != nil {
		return Statement{}, err
	}
	return Statement{Head: NewLabel(label.Name, label.Scope)}, nil
}

// parseRelationConstraint parses a `( [role:] player, ... )` role-player
// list.
func (p *parser) parseRelationConstraint() (RelationConstraint, error) {
	if err := p.expectPunct(PunctParenOpen); err != nil {
		return RelationConstraint{}, err
	}
	var players []RolePlayer
	for {
		rp, err := p.parseRolePlayer()
		if err != nil {
			return RelationConstraint{}, err
		}
		players = append(players, rp)
		if p.atPunct(PunctComma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(PunctParenClose); err != nil {
		return RelationConstraint{}, err
	}
	return RelationConstraint{RolePlayers: players}, nil
}

func (p *parser) parseRolePlayer() (RolePlayer, error) {
	// Lookahead for "label_or_var ':'" to detect an explicit role. A scoped
	// role label ("scope:role:") is recognised only when a second colon
	// follows, so the colon after a plain role is not read as a scope
	// separator.
	save := p.pos
	if p.at(TokIdentifier) || p.at(TokVariable) {
		var roleStmt Statement
		if p.at(TokVariable) {
			v, _ := p.parseVariableRef()
			roleStmt = Statement{Head: v}
		} else {
			name, scope := p.advance().Text, ""
			if p.atPunct(PunctColon) && p.toks[p.pos+1].Kind == TokIdentifier &&
				p.toks[p.pos+2].Kind == TokPunct && p.toks[p.pos+2].Text == PunctColon {
				p.advance()
				scope, name = name, p.advance().Text
			}
			roleStmt = Statement{Head: NewLabel(name, scope)}
		}
		if p.atPunct(PunctColon) {
			p.advance()
			player, perr := p.parseEmbeddedStatement()
			if perr != nil {
				return RolePlayer{}, perr
			}
			return RolePlayer{Role: &roleStmt, Player: player}, nil
		}
		// Not a role:player pair after all; rewind and parse as a bare player.
		p.pos = save
	}
	player, err := p.parseEmbeddedStatement()
	if err != nil {
		return RolePlayer{}, err
	}
	return RolePlayer{Player: player}, nil
}

// parseCompute parses a `compute <method> ...` query against the §4.7
// condition/algorithm/argument grammar.
func (p *parser) parseCompute() (Query, error) {
	p.advance() // 'compute'
	if !p.at(TokIdentifier) && !p.at(TokKeyword) {
		return nil, p.syntaxError([]string{"compute method"})
	}
	methodText := p.advance().Text
	method, err := resolveComputeMethod(methodText)
	if err != nil {
		return nil, err
	}
	c := &Compute{Method: method}
	for {
		if p.atPunct(PunctComma) {
			p.advance()
		}
		switch {
		case p.atKeyword(KeywordOf):
			p.advance()
			labels, err := p.parseLabelSet()
			if err != nil {
				return nil, err
			}
			c.Of = labels
		case p.atKeyword(KeywordFrom):
			p.advance()
			if !p.at(TokIdentifier) && !p.at(TokString) {
				return nil, p.syntaxError([]string{"identifier"})
			}
			c.From = p.advance().Text
		case p.atKeyword(KeywordTo):
			p.advance()
			if !p.at(TokIdentifier) && !p.at(TokString) {
				return nil, p.syntaxError([]string{"identifier"})
			}
			c.To = p.advance().Text
		case p.atKeyword(KeywordIn):
			p.advance()
			labels, err := p.parseLabelSet()
			if err != nil {
				return nil, err
			}
			c.In = labels
		case p.atKeyword(KeywordUsing):
			p.advance()
			if !p.at(TokIdentifier) {
				return nil, p.syntaxError([]string{"algorithm"})
			}
			algo, err := resolveComputeAlgorithm(p.advance().Text)
			if err != nil {
				return nil, err
			}
			c.Algorithm = algo
		case p.atKeyword(KeywordWhere):
			p.advance()
			if err := p.parseComputeArgs(c); err != nil {
				return nil, err
			}
		default:
			if err := p.expectPunct(PunctSemicolon); err != nil {
				return nil, err
			}
			applyComputeDefaults(c)
			if err := ValidateCompute(c); err != nil {
				return nil, err
			}
			return c, nil
		}
	}
}

func (p *parser) parseLabelSet() ([]Label, error) {
	if p.atPunct(PunctBrackOpen) {
		p.advance()
		var labels []Label
		for !p.atPunct(PunctBrackClose) {
			l, err := p.parseLabel()
			if err != nil {
				return nil, err
			}
			labels = append(labels, l)
			if p.atPunct(PunctComma) {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(PunctBrackClose); err != nil {
			return nil, err
		}
		return labels, nil
	}
	l, err := p.parseLabel()
	if err != nil {
		return nil, err
	}
	return []Label{l}, nil
}

func (p *parser) parseComputeArgs(c *Compute) error {
	if c.Args == nil {
		c.Args = newComputeArgs()
	}
	open := p.atPunct(PunctBrackOpen)
	if open {
		p.advance()
	}
	for {
		if !p.at(TokIdentifier) {
			return p.syntaxError([]string{"argument"})
		}
		param, err := resolveComputeParam(p.advance().Text)
		if err != nil {
			return err
		}
		if !(p.peek().Kind == TokComparator && (p.peek().Text == "=" || p.peek().Text == "==")) {
			return p.syntaxError([]string{"="})
		}
		p.advance()
		if !p.at(TokInteger) {
			return p.syntaxError([]string{"integer"})
		}
		val := p.advance().Text
		c.Args.Set(param, val)
		if open && p.atPunct(PunctComma) {
			p.advance()
			continue
		}
		break
	}
	if open {
		return p.expectPunct(PunctBrackClose)
	}
	return nil
}

package dml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// parser errors.
var (
	ErrSyntax = errors.New("syntax error")
)

// recordToggles is the fixed set of boolean configuration options a
// CREATE RECORD body may carry. Keys are lowercase.
var recordToggles = map[string]struct{}{
	"allowattachments":        {},
	"shownotes":               {},
	"enablemailmerge":         {},
	"allowinlineediting":      {},
	"allowquicksearch":        {},
	"allowquickadd":           {},
	"allowuiaccess":           {},
	"allowreports":            {},
	"includename":             {},
	"showid":                  {},
	"showcreationdate":        {},
	"showlastmodified":        {},
	"showowner":               {},
	"enablesystemnotes":       {},
	"enablekeywords":          {},
	"isordered":               {},
	"isinactive":              {},
	"allowduplicates":         {},
	"usepermissions":          {},
	"enableoptimisticlocking": {},
}

// ParserOptions configures statement parsing.
type ParserOptions struct {
	// ScriptIDPrefix is prepended to generated script IDs when the
	// statement body does not carry its own prefix option.
	ScriptIDPrefix string
}

// Parser classifies raw query text and parses DML statement bodies.
// A Parser is stateless and safe for concurrent use.
type Parser struct {
	opts ParserOptions
}

func NewParser(opts ParserOptions) *Parser {
	return &Parser{opts: opts}
}

// Classify inspects raw query text and decides whether it is a DML
// statement. It returns (stmt, true, nil) for a well-formed DML
// statement, (nil, false, nil) for non-DML text that must be passed
// through to ordinary query execution, and (nil, true, err) when a DML
// keyword prefix matched but the body failed to parse. Classification
// never errors on non-DML input.
func (p *Parser) Classify(raw string) (Statement, bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false, nil
	}

	body, commit := stripCommitMarker(trimmed)

	words := strings.Fields(strings.ToUpper(body))
	first := ""
	second := ""
	if len(words) > 0 {
		first = words[0]
	}
	if len(words) > 1 {
		second = words[1]
	}

	// Fixed priority order. The first matching keyword prefix decides
	// the subtype; everything after that is a hard parse.
	switch {
	case first == "CREATE" && second == "RECORD":
		stmt, err := p.parseCreateRecord(body)
		return statementOrNil(stmt, err)
	case first == "CREATE" && second == "LIST":
		stmt, err := p.parseCreateList(body)
		return statementOrNil(stmt, err)
	case first == "INSERT" && second == "INTO":
		stmt, err := p.parseInsert(body, commit)
		return statementOrNil(stmt, err)
	case first == "UPDATE":
		stmt, err := p.parseUpdate(body, commit)
		return statementOrNil(stmt, err)
	case first == "DELETE" && second == "FROM":
		stmt, err := p.parseDelete(body, commit)
		return statementOrNil(stmt, err)
	}

	return nil, false, nil
}

func statementOrNil(stmt Statement, err error) (Statement, bool, error) {
	if err != nil {
		return nil, true, err
	}
	return stmt, true, nil
}

// stripCommitMarker removes a trailing COMMIT token, returning the
// remaining text and whether the marker was present. The marker may
// follow an optional statement-terminating semicolon.
func stripCommitMarker(s string) (string, bool) {
	rest := strings.TrimRight(s, " \t\r\n")
	upper := strings.ToUpper(rest)
	if !strings.HasSuffix(upper, "COMMIT") {
		return s, false
	}
	cut := rest[:len(rest)-len("COMMIT")]
	// Word boundary: COMMIT alone, or preceded by whitespace or ';'.
	if cut != "" {
		last := cut[len(cut)-1]
		if last != ' ' && last != '\t' && last != '\n' && last != '\r' && last != ';' {
			return s, false
		}
	}
	return strings.TrimRight(cut, " \t\r\n"), true
}

// stream is the token-level cursor the sub-parsers share.
type stream struct {
	lex *lexer
}

func (s *stream) next() (token, error) { return s.lex.next() }
func (s *stream) peek() (token, error) { return s.lex.peek() }

func (s *stream) expect(kind tokenKind) (token, error) {
	tok, err := s.next()
	if err != nil {
		return token{}, err
	}
	if tok.kind != kind {
		return token{}, fmt.Errorf("%w: expected %s, found %q at offset %d", ErrSyntax, kind, tok.text, tok.pos)
	}
	return tok, nil
}

func (s *stream) expectKeyword(word string) error {
	tok, err := s.next()
	if err != nil {
		return err
	}
	if tok.kind != tokenIdent || !strings.EqualFold(tok.text, word) {
		return fmt.Errorf("%w: expected %s, found %q at offset %d", ErrSyntax, strings.ToUpper(word), tok.text, tok.pos)
	}
	return nil
}

func (s *stream) peekKeyword(word string) bool {
	tok, err := s.peek()
	if err != nil {
		return false
	}
	return tok.kind == tokenIdent && strings.EqualFold(tok.text, word)
}

// skipComma consumes a single comma separator if present.
func (s *stream) skipComma() {
	tok, err := s.peek()
	if err == nil && tok.kind == tokenComma {
		s.next() //nolint:errcheck
	}
}

// skipEquals consumes an optional '=' between an option key and its
// value. List bodies accept both `name "X"` and `name = "X"`.
func (s *stream) skipEquals() {
	tok, err := s.peek()
	if err == nil && tok.kind == tokenEquals {
		s.next() //nolint:errcheck
	}
}

// expectEnd consumes an optional trailing semicolon and requires EOF.
func (s *stream) expectEnd() error {
	tok, err := s.next()
	if err != nil {
		return err
	}
	if tok.kind == tokenSemicolon {
		tok, err = s.next()
		if err != nil {
			return err
		}
	}
	if tok.kind != tokenEOF {
		return fmt.Errorf("%w: unexpected trailing input %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
	return nil
}

func (p *Parser) parseCreateRecord(body string) (*CreateRecord, error) {
	s := &stream{lex: newLexer(body)}
	if err := s.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := s.expectKeyword("RECORD"); err != nil {
		return nil, err
	}
	ident, err := s.expect(tokenIdent)
	if err != nil {
		return nil, fmt.Errorf("%w: CREATE RECORD requires an identifier", ErrSyntax)
	}

	stmt := &CreateRecord{
		EntityID: strings.ToLower(ident.text),
		Toggles:  map[string]bool{},
	}

	if _, err := s.expect(tokenLParen); err != nil {
		return nil, fmt.Errorf("%w: CREATE RECORD body must be parenthesized", ErrSyntax)
	}

	for {
		tok, err := s.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			s.next() //nolint:errcheck
			break
		}
		if tok.kind == tokenEOF {
			return nil, fmt.Errorf("%w: unbalanced parenthesis in CREATE RECORD body", ErrSyntax)
		}
		// Legacy form: a bare string literal sets the script ID prefix.
		if tok.kind == tokenString {
			s.next() //nolint:errcheck
			stmt.Prefix = tok.text
			s.skipComma()
			continue
		}

		name, err := s.expect(tokenIdent)
		if err != nil {
			return nil, err
		}

		// A field declaration is recognized by the absence of '=' after
		// the identifier.
		nxt, err := s.peek()
		if err != nil {
			return nil, err
		}
		if nxt.kind == tokenEquals {
			if err := p.parseRecordOption(s, stmt, name.text); err != nil {
				return nil, err
			}
		} else {
			field, err := p.parseFieldDecl(s, name.text)
			if err != nil {
				return nil, err
			}
			stmt.Fields = append(stmt.Fields, field)
		}
		s.skipComma()
	}

	if err := s.expectEnd(); err != nil {
		return nil, err
	}

	p.deriveRecordScriptIDs(stmt)
	return stmt, nil
}

func (p *Parser) parseRecordOption(s *stream, stmt *CreateRecord, name string) error {
	if _, err := s.expect(tokenEquals); err != nil {
		return err
	}
	key := strings.ToLower(name)

	switch key {
	case "name", "displayname":
		v, err := p.parseStringOption(s, key)
		if err != nil {
			return err
		}
		stmt.DisplayName = v
	case "description":
		v, err := p.parseStringOption(s, key)
		if err != nil {
			return err
		}
		stmt.Description = v
	case "owner":
		v, err := p.parseStringOption(s, key)
		if err != nil {
			return err
		}
		stmt.Owner = v
	case "accesstype":
		v, err := p.parseStringOption(s, key)
		if err != nil {
			return err
		}
		stmt.AccessType = v
	case "prefix":
		v, err := p.parseStringOption(s, key)
		if err != nil {
			return err
		}
		stmt.Prefix = v
	default:
		if _, ok := recordToggles[key]; !ok {
			return fmt.Errorf("%w: unknown configuration option %q", ErrSyntax, name)
		}
		v, err := p.parseBool(s, key)
		if err != nil {
			return err
		}
		stmt.Toggles[key] = v
	}
	return nil
}

// parseStringOption accepts a quoted string or a bare identifier value.
func (p *Parser) parseStringOption(s *stream, key string) (string, error) {
	tok, err := s.next()
	if err != nil {
		return "", err
	}
	switch tok.kind {
	case tokenString, tokenIdent:
		return tok.text, nil
	}
	return "", fmt.Errorf("%w: option %s requires a string value, found %q", ErrSyntax, key, tok.text)
}

func (p *Parser) parseBool(s *stream, key string) (bool, error) {
	tok, err := s.next()
	if err != nil {
		return false, err
	}
	text := tok.text
	if tok.kind == tokenString || tok.kind == tokenIdent {
		switch strings.ToUpper(text) {
		case "TRUE", "T":
			return true, nil
		case "FALSE", "F":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: option %s requires TRUE or FALSE, found %q", ErrSyntax, key, text)
}

func (p *Parser) parseFieldDecl(s *stream, name string) (Field, error) {
	typeTok, err := s.expect(tokenIdent)
	if err != nil {
		return Field{}, fmt.Errorf("%w: field %q is missing a type", ErrSyntax, name)
	}
	ft, ok := ParseFieldType(strings.ToUpper(typeTok.text))
	if !ok {
		return Field{}, fmt.Errorf("%w: unrecognized field type %q for field %q", ErrSyntax, typeTok.text, name)
	}

	field := Field{Name: strings.ToLower(name), Type: ft}

	// Optional type options: LIST(customlist_x) etc.
	nxt, err := s.peek()
	if err != nil {
		return Field{}, err
	}
	if nxt.kind == tokenLParen {
		s.next() //nolint:errcheck
		ref, err := s.next()
		if err != nil {
			return Field{}, err
		}
		if ref.kind != tokenIdent && ref.kind != tokenString {
			return Field{}, fmt.Errorf("%w: field %q has a malformed type option", ErrSyntax, name)
		}
		field.ListReference = ref.text
		if _, err := s.expect(tokenRParen); err != nil {
			return Field{}, err
		}
	}
	return field, nil
}

func (p *Parser) parseCreateList(body string) (*CreateList, error) {
	s := &stream{lex: newLexer(body)}
	if err := s.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := s.expectKeyword("LIST"); err != nil {
		return nil, err
	}
	ident, err := s.expect(tokenIdent)
	if err != nil {
		return nil, fmt.Errorf("%w: CREATE LIST requires an identifier", ErrSyntax)
	}

	stmt := &CreateList{
		ListID:  strings.ToLower(ident.text),
		Options: ListOptions{OrderingMode: "ORDER_ENTERED"},
	}

	if _, err := s.expect(tokenLParen); err != nil {
		return nil, fmt.Errorf("%w: CREATE LIST body must be parenthesized", ErrSyntax)
	}

	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			break
		}
		if tok.kind == tokenEOF {
			return nil, fmt.Errorf("%w: unbalanced parenthesis in CREATE LIST body", ErrSyntax)
		}
		if tok.kind != tokenIdent {
			return nil, fmt.Errorf("%w: unexpected %q in CREATE LIST body at offset %d", ErrSyntax, tok.text, tok.pos)
		}

		s.skipEquals()
		switch key := strings.ToLower(tok.text); key {
		case "name", "displayname":
			v, err := p.parseStringOption(s, key)
			if err != nil {
				return nil, err
			}
			stmt.DisplayName = v
		case "description":
			v, err := p.parseStringOption(s, key)
			if err != nil {
				return nil, err
			}
			stmt.Options.Description = v
		case "optionsorder":
			v, err := p.parseStringOption(s, key)
			if err != nil {
				return nil, err
			}
			stmt.Options.OrderingMode = strings.ToUpper(v)
		case "matrixoption":
			v, err := p.parseBool(s, key)
			if err != nil {
				return nil, err
			}
			stmt.Options.IsMatrix = v
		case "isinactive":
			v, err := p.parseBool(s, key)
			if err != nil {
				return nil, err
			}
			stmt.Options.IsInactive = v
		case "values":
			values, err := p.parseListValues(s)
			if err != nil {
				return nil, err
			}
			stmt.Options.Values = values
		default:
			return nil, fmt.Errorf("%w: unknown list option %q", ErrSyntax, tok.text)
		}
		s.skipComma()
	}

	if err := s.expectEnd(); err != nil {
		return nil, err
	}

	stmt.FullListID = p.listScriptID(stmt)
	return stmt, nil
}

func (p *Parser) parseListValues(s *stream) ([]ListValue, error) {
	if _, err := s.expect(tokenLBracket); err != nil {
		return nil, fmt.Errorf("%w: values option requires a bracketed block", ErrSyntax)
	}

	var values []ListValue
	for {
		tok, err := s.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRBracket {
			s.next() //nolint:errcheck
			break
		}
		if tok.kind == tokenEOF {
			return nil, fmt.Errorf("%w: unterminated values block", ErrSyntax)
		}
		if err := s.expectKeyword("value"); err != nil {
			return nil, err
		}
		s.skipEquals()
		text, err := s.expect(tokenString)
		if err != nil {
			return nil, fmt.Errorf("%w: value requires a quoted string", ErrSyntax)
		}
		v := ListValue{Value: text.text}

		// Value attributes may appear in any order until the next
		// "value" keyword or the end of the block.
		for {
			s.skipComma()
			attr, err := s.peek()
			if err != nil {
				return nil, err
			}
			if attr.kind == tokenRBracket || (attr.kind == tokenIdent && strings.EqualFold(attr.text, "value")) {
				break
			}
			if attr.kind != tokenIdent {
				return nil, fmt.Errorf("%w: unexpected %q in values block at offset %d", ErrSyntax, attr.text, attr.pos)
			}
			s.next() //nolint:errcheck
			s.skipEquals()
			switch strings.ToLower(attr.text) {
			case "abbreviation":
				abbr, err := s.expect(tokenString)
				if err != nil {
					return nil, fmt.Errorf("%w: abbreviation requires a quoted string", ErrSyntax)
				}
				v.Abbreviation = abbr.text
			case "inactive":
				b, err := p.parseBool(s, "inactive")
				if err != nil {
					return nil, err
				}
				v.Inactive = b
			case "translations":
				trans, err := p.parseTranslations(s)
				if err != nil {
					return nil, err
				}
				v.Translations = trans
			default:
				return nil, fmt.Errorf("%w: unknown value attribute %q", ErrSyntax, attr.text)
			}
		}
		values = append(values, v)
	}
	return values, nil
}

func (p *Parser) parseTranslations(s *stream) ([]Translation, error) {
	if _, err := s.expect(tokenLBracket); err != nil {
		return nil, fmt.Errorf("%w: translations requires a bracketed block", ErrSyntax)
	}
	var out []Translation
	for {
		tok, err := s.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRBracket {
			s.next() //nolint:errcheck
			return out, nil
		}
		if tok.kind == tokenEOF {
			return nil, fmt.Errorf("%w: unterminated translations block", ErrSyntax)
		}
		if err := s.expectKeyword("language"); err != nil {
			return nil, err
		}
		s.skipEquals()
		lang, err := p.parseStringOption(s, "language")
		if err != nil {
			return nil, err
		}
		s.skipComma()
		if err := s.expectKeyword("value"); err != nil {
			return nil, err
		}
		s.skipEquals()
		val, err := s.expect(tokenString)
		if err != nil {
			return nil, fmt.Errorf("%w: translation value requires a quoted string", ErrSyntax)
		}
		out = append(out, Translation{Language: strings.ToLower(lang), Value: val.text})
		s.skipComma()
	}
}

func (p *Parser) parseInsert(body string, commit bool) (*Insert, error) {
	s := &stream{lex: newLexer(body)}
	if err := s.expectKeyword("INSERT"); err != nil {
		return nil, err
	}
	if err := s.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	table, err := s.expect(tokenIdent)
	if err != nil {
		return nil, fmt.Errorf("%w: INSERT INTO requires a table name", ErrSyntax)
	}

	stmt := &Insert{TableName: strings.ToLower(table.text), Commit: commit}

	tok, err := s.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.kind == tokenLParen:
		fields, err := p.parseColumnsValues(s)
		if err != nil {
			return nil, err
		}
		stmt.Fields = fields
	case tok.kind == tokenIdent && strings.EqualFold(tok.text, "SET"):
		s.next() //nolint:errcheck
		fields, err := p.parseAssignList(s)
		if err != nil {
			return nil, err
		}
		stmt.Fields = fields
	default:
		return nil, fmt.Errorf("%w: INSERT requires a column list or SET clause", ErrSyntax)
	}

	if err := s.expectEnd(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseColumnsValues handles the (cols) VALUES (vals) form, pairing
// columns and values positionally.
func (p *Parser) parseColumnsValues(s *stream) ([]Assignment, error) {
	if _, err := s.expect(tokenLParen); err != nil {
		return nil, err
	}
	var cols []string
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			break
		}
		if tok.kind == tokenComma {
			continue
		}
		if tok.kind != tokenIdent {
			return nil, fmt.Errorf("%w: expected column name, found %q at offset %d", ErrSyntax, tok.text, tok.pos)
		}
		cols = append(cols, strings.ToLower(tok.text))
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: INSERT column list is empty", ErrSyntax)
	}

	if err := s.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	if _, err := s.expect(tokenLParen); err != nil {
		return nil, err
	}
	var vals []any
	for {
		tok, err := s.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenRParen {
			s.next() //nolint:errcheck
			break
		}
		if tok.kind == tokenComma {
			s.next() //nolint:errcheck
			continue
		}
		v, err := p.parseLiteral(s)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}

	if len(cols) != len(vals) {
		return nil, fmt.Errorf("%w: %d columns but %d values", ErrSyntax, len(cols), len(vals))
	}
	out := make([]Assignment, len(cols))
	for i, c := range cols {
		out[i] = Assignment{Field: c, Value: vals[i]}
	}
	return out, nil
}

// parseAssignList handles `k = v, k = v` pairs, stopping before a
// WHERE keyword, a semicolon or end of input.
func (p *Parser) parseAssignList(s *stream) ([]Assignment, error) {
	var out []Assignment
	for {
		tok, err := s.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF || tok.kind == tokenSemicolon {
			break
		}
		if tok.kind == tokenIdent && strings.EqualFold(tok.text, "WHERE") {
			break
		}
		name, err := s.expect(tokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(tokenEquals); err != nil {
			return nil, fmt.Errorf("%w: assignment for %q is missing '='", ErrSyntax, name.text)
		}
		v, err := p.parseLiteral(s)
		if err != nil {
			return nil, err
		}
		out = append(out, Assignment{Field: strings.ToLower(name.text), Value: v})
		s.skipComma()
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: SET clause is empty", ErrSyntax)
	}
	return out, nil
}

func (p *Parser) parseUpdate(body string, commit bool) (*Update, error) {
	s := &stream{lex: newLexer(body)}
	if err := s.expectKeyword("UPDATE"); err != nil {
		return nil, err
	}
	table, err := s.expect(tokenIdent)
	if err != nil {
		return nil, fmt.Errorf("%w: UPDATE requires a table name", ErrSyntax)
	}
	if err := s.expectKeyword("SET"); err != nil {
		return nil, err
	}
	set, err := p.parseAssignList(s)
	if err != nil {
		return nil, err
	}

	stmt := &Update{TableName: strings.ToLower(table.text), Set: set, Commit: commit}

	// WHERE is optional at parse time; the validator rejects an UPDATE
	// without one.
	if s.peekKeyword("WHERE") {
		s.next() //nolint:errcheck
		where, err := p.parseWhere(s)
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	if err := s.expectEnd(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseDelete(body string, commit bool) (*Delete, error) {
	s := &stream{lex: newLexer(body)}
	if err := s.expectKeyword("DELETE"); err != nil {
		return nil, err
	}
	if err := s.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := s.expect(tokenIdent)
	if err != nil {
		return nil, fmt.Errorf("%w: DELETE FROM requires a table name", ErrSyntax)
	}

	stmt := &Delete{TableName: strings.ToLower(table.text), Commit: commit}

	if s.peekKeyword("WHERE") {
		s.next() //nolint:errcheck
		where, err := p.parseWhere(s)
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	if err := s.expectEnd(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseWhere parses AND-joined equality and membership conditions.
func (p *Parser) parseWhere(s *stream) ([]Condition, error) {
	var conds []Condition
	for {
		field, err := s.expect(tokenIdent)
		if err != nil {
			return nil, fmt.Errorf("%w: WHERE clause requires a field name", ErrSyntax)
		}

		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.kind == tokenEquals:
			v, err := p.parseLiteral(s)
			if err != nil {
				return nil, err
			}
			conds = append(conds, Condition{Field: strings.ToLower(field.text), Op: OpEq, Value: v})
		case tok.kind == tokenIdent && strings.EqualFold(tok.text, "IN"):
			if _, err := s.expect(tokenLParen); err != nil {
				return nil, fmt.Errorf("%w: IN requires a parenthesized value list", ErrSyntax)
			}
			var vals []any
			for {
				nxt, err := s.peek()
				if err != nil {
					return nil, err
				}
				if nxt.kind == tokenRParen {
					s.next() //nolint:errcheck
					break
				}
				if nxt.kind == tokenComma {
					s.next() //nolint:errcheck
					continue
				}
				v, err := p.parseLiteral(s)
				if err != nil {
					return nil, err
				}
				vals = append(vals, v)
			}
			if len(vals) == 0 {
				return nil, fmt.Errorf("%w: IN value list is empty", ErrSyntax)
			}
			conds = append(conds, Condition{Field: strings.ToLower(field.text), Op: OpIn, Values: vals})
		default:
			return nil, fmt.Errorf("%w: expected '=' or IN after %q, found %q", ErrSyntax, field.text, tok.text)
		}

		if !s.peekKeyword("AND") {
			return conds, nil
		}
		s.next() //nolint:errcheck
	}
}

// parseLiteral parses a typed literal: quoted string, bare numeric,
// TRUE/FALSE or NULL.
func (p *Parser) parseLiteral(s *stream) (any, error) {
	tok, err := s.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenString:
		return tok.text, nil
	case tokenNumber:
		n, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed number %q", ErrSyntax, tok.text)
		}
		return n, nil
	case tokenIdent:
		switch strings.ToUpper(tok.text) {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		case "NULL":
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w: expected a literal, found %q at offset %d", ErrSyntax, tok.text, tok.pos)
}

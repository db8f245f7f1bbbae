package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// ValueKind identifies the type held by a Value
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindBool
	KindString
	KindName
	KindArray
	KindDict
)

// Value is a content-stream operand
type Value struct {
	Kind ValueKind
	Num  float64
	Bool bool
	Str  []byte  // String payload (raw bytes, escapes resolved)
	Name string  // Name payload, without the leading slash
	Arr  []Value // Array payload
	Dict map[string]Value
}

// Float returns the numeric payload, or 0 for non-numbers
func (v Value) Float() float64 {
	if v.Kind == KindNumber {
		return v.Num
	}
	return 0
}

// Operation represents a single content stream operation consisting of an
// operator and its operands. Operands are the values that precede the
// operator.
type Operation struct {
	Operator string
	Operands []Value
}

// Float returns operand i as a float64, or 0 when absent
func (op Operation) Float(i int) float64 {
	if i < 0 || i >= len(op.Operands) {
		return 0
	}
	return op.Operands[i].Float()
}

// Parser parses PDF content streams into a sequence of operations
type Parser struct {
	data     []byte
	pos      int
	ops      []Operation
	operands []Value
}

// NewParser creates a new content stream parser for the given data
func NewParser(data []byte) *Parser {
	return &Parser{
		data: data,
		ops:  make([]Operation, 0, 64),
	}
}

// Parse parses the content stream and returns all operations in order.
// Inline images (BI ... EI) are skipped: their binary payload is not
// tokenizable and carries no vector geometry.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.data) {
			break
		}
		if err := p.parseNext(); err != nil {
			return nil, err
		}
	}
	return p.ops, nil
}

// parseNext parses the next token, which is either an operand (pushed onto
// the stack) or an operator (which consumes the operand stack and creates
// an Operation).
func (p *Parser) parseNext() error {
	start := p.pos
	c := p.data[p.pos]

	if isRegular(c) && !isNumberStart(c) {
		return p.parseOperator()
	}

	operand, err := p.parseOperand()
	if err != nil {
		return fmt.Errorf("at position %d: %w", start, err)
	}
	p.operands = append(p.operands, operand)
	return nil
}

func (p *Parser) parseOperator() error {
	start := p.pos

	var op bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isRegular(c) {
			op.WriteByte(c)
			p.pos++
		} else {
			break
		}
	}

	operator := op.String()
	if operator == "" {
		return fmt.Errorf("empty operator at position %d", start)
	}

	switch operator {
	case "true", "false":
		p.operands = append(p.operands, Value{Kind: KindBool, Bool: operator == "true"})
		return nil
	case "null":
		p.operands = append(p.operands, Value{Kind: KindNull})
		return nil
	case "BI":
		// Inline image: discard any pending operands and skip to EI
		p.operands = p.operands[:0]
		return p.skipInlineImage()
	}

	operation := Operation{
		Operator: operator,
		Operands: make([]Value, len(p.operands)),
	}
	copy(operation.Operands, p.operands)
	p.ops = append(p.ops, operation)
	p.operands = p.operands[:0]

	return nil
}

// skipInlineImage advances past an inline image body. The image data runs
// from after the ID operator to the EI operator; EI must be preceded and
// followed by whitespace (or end of stream) to count as the terminator.
func (p *Parser) skipInlineImage() error {
	// Find the ID operator that starts the binary data
	for p.pos+1 < len(p.data) {
		if p.data[p.pos] == 'I' && p.data[p.pos+1] == 'D' {
			p.pos += 2
			// One whitespace byte separates ID from the data
			if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
				p.pos++
			}
			break
		}
		p.pos++
	}

	for p.pos+1 < len(p.data) {
		if p.data[p.pos] == 'E' && p.data[p.pos+1] == 'I' {
			before := p.pos == 0 || isWhitespace(p.data[p.pos-1])
			afterPos := p.pos + 2
			after := afterPos >= len(p.data) || isWhitespace(p.data[afterPos]) || isDelimiter(p.data[afterPos])
			if before && after {
				p.pos = afterPos
				return nil
			}
		}
		p.pos++
	}
	return fmt.Errorf("unterminated inline image")
}

// parseOperand parses a single operand: number, string, hex string, name,
// array, or dictionary.
func (p *Parser) parseOperand() (Value, error) {
	p.skipWhitespaceAndComments()
	if p.pos >= len(p.data) {
		return Value{}, fmt.Errorf("unexpected end of stream")
	}

	c := p.data[p.pos]

	switch {
	case isNumberStart(c):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName()
	case c == '[':
		return p.parseArray()
	}
	return Value{}, fmt.Errorf("unexpected character %q", c)
}

func (p *Parser) parseNumber() (Value, error) {
	start := p.pos
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9') {
			p.pos++
		} else {
			break
		}
	}
	f, err := strconv.ParseFloat(normalizeNumber(string(p.data[start:p.pos])), 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q", p.data[start:p.pos])
	}
	return Value{Kind: KindNumber, Num: f}, nil
}

// normalizeNumber fixes forms strconv rejects but PDF allows, such as
// "." and "-." and trailing dots.
func normalizeNumber(s string) string {
	if s == "" || s == "." || s == "-" || s == "+" || s == "-." || s == "+." {
		return "0"
	}
	if s[len(s)-1] == '.' {
		return s + "0"
	}
	if s[0] == '.' {
		return "0" + s
	}
	if len(s) > 1 && (s[0] == '-' || s[0] == '+') && s[1] == '.' {
		return string(s[0]) + "0" + s[1:]
	}
	return s
}

func (p *Parser) parseString() (Value, error) {
	p.pos++ // consume '('
	var buf bytes.Buffer
	depth := 1

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		switch c {
		case '\\':
			p.pos++
			if p.pos >= len(p.data) {
				return Value{}, fmt.Errorf("unterminated string escape")
			}
			e := p.data[p.pos]
			switch e {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(e)
			case '\n':
				// line continuation
			case '\r':
				if p.pos+1 < len(p.data) && p.data[p.pos+1] == '\n' {
					p.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && p.pos+1 < len(p.data); i++ {
						n := p.data[p.pos+1]
						if n < '0' || n > '7' {
							break
						}
						val = val*8 + int(n-'0')
						p.pos++
					}
					buf.WriteByte(byte(val))
				} else {
					buf.WriteByte(e)
				}
			}
			p.pos++
		case '(':
			depth++
			buf.WriteByte(c)
			p.pos++
		case ')':
			depth--
			p.pos++
			if depth == 0 {
				return Value{Kind: KindString, Str: buf.Bytes()}, nil
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
			p.pos++
		}
	}
	return Value{}, fmt.Errorf("unterminated string")
}

func (p *Parser) parseHexString() (Value, error) {
	p.pos++ // consume '<'
	var hexDigits bytes.Buffer

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '>' {
			p.pos++
			if hexDigits.Len()%2 != 0 {
				hexDigits.WriteByte('0')
			}
			digits := hexDigits.Bytes()
			out := make([]byte, 0, len(digits)/2)
			for i := 0; i+1 < len(digits); i += 2 {
				hi := hexVal(digits[i])
				lo := hexVal(digits[i+1])
				if hi < 0 || lo < 0 {
					return Value{}, fmt.Errorf("invalid hex digit")
				}
				out = append(out, byte(hi<<4|lo))
			}
			return Value{Kind: KindString, Str: out}, nil
		}
		if !isWhitespace(c) {
			hexDigits.WriteByte(c)
		}
		p.pos++
	}
	return Value{}, fmt.Errorf("unterminated hex string")
}

func (p *Parser) parseName() (Value, error) {
	p.pos++ // consume '/'
	var buf bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) {
			hi := hexVal(p.data[p.pos+1])
			lo := hexVal(p.data[p.pos+2])
			if hi >= 0 && lo >= 0 {
				buf.WriteByte(byte(hi<<4 | lo))
				p.pos += 3
				continue
			}
		}
		buf.WriteByte(c)
		p.pos++
	}
	return Value{Kind: KindName, Name: buf.String()}, nil
}

func (p *Parser) parseArray() (Value, error) {
	p.pos++ // consume '['
	var elems []Value

	for {
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.data) {
			return Value{}, fmt.Errorf("unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return Value{Kind: KindArray, Arr: elems}, nil
		}
		// Booleans and null appear as bare words inside arrays
		if isRegular(p.data[p.pos]) && !isNumberStart(p.data[p.pos]) {
			word := p.peekWord()
			switch word {
			case "true", "false":
				elems = append(elems, Value{Kind: KindBool, Bool: word == "true"})
				p.pos += len(word)
				continue
			case "null":
				elems = append(elems, Value{Kind: KindNull})
				p.pos += len(word)
				continue
			}
			return Value{}, fmt.Errorf("unexpected token %q in array", word)
		}
		v, err := p.parseOperand()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
}

func (p *Parser) parseDict() (Value, error) {
	p.pos += 2 // consume '<<'
	dict := make(map[string]Value)

	for {
		p.skipWhitespaceAndComments()
		if p.pos+1 >= len(p.data) {
			return Value{}, fmt.Errorf("unterminated dictionary")
		}
		if p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return Value{Kind: KindDict, Dict: dict}, nil
		}
		if p.data[p.pos] != '/' {
			return Value{}, fmt.Errorf("expected name key in dictionary")
		}
		key, err := p.parseName()
		if err != nil {
			return Value{}, err
		}
		p.skipWhitespaceAndComments()
		val, err := p.parseOperand()
		if err != nil {
			return Value{}, err
		}
		dict[key.Name] = val
	}
}

func (p *Parser) peekWord() string {
	end := p.pos
	for end < len(p.data) && isRegular(p.data[end]) {
		end++
	}
	return string(p.data[p.pos:end])
}

func (p *Parser) skipWhitespaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		break
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

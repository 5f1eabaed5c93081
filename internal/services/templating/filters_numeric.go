package templating

import (
	"math"
	"strconv"
	"strings"

	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("calc", filterCalc)
	registerFilter("round", filterRound)
	registerFilter("number_format", filterNumberFormat)
}

func carryToFloat(value models.FilterValue) (float64, bool) {
	if value.Kind != models.KindString {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// filterCalc evaluates a simple arithmetic expression over the carried
// number. The literal "x" stands for the carry; "+5", "*2" etc. are
// shorthand for "x+5", "x*2". Operators: + - * / ** ^. On any parse or
// type failure the carry passes through unchanged.
func filterCalc(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	n, ok := carryToFloat(value)
	if !ok {
		return value
	}
	expr := strings.TrimSpace(firstArgString(args, ""))
	if expr == "" {
		return value
	}
	if expr[0] == '+' || expr[0] == '-' || expr[0] == '*' || expr[0] == '/' {
		expr = "x" + expr
	}
	result, ok := evalArith(expr, n)
	if !ok {
		return value
	}
	return models.NewString(formatNumber(result))
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// evalArith is a small recursive-descent evaluator for +,-,*,/,**/^ with
// parentheses and the single variable "x". Deliberately not exposed as a
// general expression language: it only backs the calc filter.
func evalArith(expr string, x float64) (float64, bool) {
	p := &arithParser{input: expr, x: x}
	v, ok := p.parseExpr()
	if !ok {
		return 0, false
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, false
	}
	return v, true
}

type arithParser struct {
	input string
	pos   int
	x     float64
}

func (p *arithParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *arithParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *arithParser) parseExpr() (float64, bool) {
	v, ok := p.parseTerm()
	if !ok {
		return 0, false
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, ok := p.parseTerm()
			if !ok {
				return 0, false
			}
			v += rhs
		case '-':
			p.pos++
			rhs, ok := p.parseTerm()
			if !ok {
				return 0, false
			}
			v -= rhs
		default:
			return v, true
		}
	}
}

func (p *arithParser) parseTerm() (float64, bool) {
	v, ok := p.parsePower()
	if !ok {
		return 0, false
	}
	for {
		switch p.peek() {
		case '*':
			if p.pos+1 < len(p.input) && p.input[p.pos+1] == '*' {
				return v, true
			}
			p.pos++
			rhs, ok := p.parsePower()
			if !ok {
				return 0, false
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, ok := p.parsePower()
			if !ok || rhs == 0 {
				return 0, false
			}
			v /= rhs
		default:
			return v, true
		}
	}
}

func (p *arithParser) parsePower() (float64, bool) {
	v, ok := p.parseUnary()
	if !ok {
		return 0, false
	}
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], "**") {
		p.pos += 2
		rhs, ok := p.parsePower()
		if !ok {
			return 0, false
		}
		return math.Pow(v, rhs), true
	}
	if p.peek() == '^' {
		p.pos++
		rhs, ok := p.parsePower()
		if !ok {
			return 0, false
		}
		return math.Pow(v, rhs), true
	}
	return v, true
}

func (p *arithParser) parseUnary() (float64, bool) {
	if p.peek() == '-' {
		p.pos++
		v, ok := p.parseUnary()
		return -v, ok
	}
	return p.parseAtom()
}

func (p *arithParser) parseAtom() (float64, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	if p.input[p.pos] == '(' {
		p.pos++
		v, ok := p.parseExpr()
		if !ok {
			return 0, false
		}
		if p.peek() != ')' {
			return 0, false
		}
		p.pos++
		return v, true
	}
	if p.input[p.pos] == 'x' {
		p.pos++
		return p.x, true
	}
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	f, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func filterRound(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	n, ok := carryToFloat(value)
	if !ok {
		return value
	}
	digits := 0
	if len(args.positional) > 0 {
		digits, _ = strconv.Atoi(args.positional[0].str)
	}
	mult := math.Pow(10, float64(digits))
	rounded := math.Round(n*mult) / mult
	return models.NewString(formatNumber(rounded))
}

// filterNumberFormat formats the carried number with a fixed decimal count,
// a custom decimal-point character, and a thousands separator.
func filterNumberFormat(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	n, ok := carryToFloat(value)
	if !ok {
		return value
	}
	decimals := 0
	if len(args.positional) > 0 {
		decimals, _ = strconv.Atoi(args.positional[0].str)
	}
	dp := "."
	if len(args.positional) > 1 {
		dp = args.positional[1].str
	}
	thousands := ","
	if len(args.positional) > 2 {
		thousands = args.positional[2].str
	}

	s := strconv.FormatFloat(n, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
	}

	grouped := groupThousands(intPart, thousands)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	if fracPart != "" {
		b.WriteString(dp)
		b.WriteString(fracPart)
	}
	return models.NewString(b.String())
}

func groupThousands(intPart, sep string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)
	return strings.Join(parts, sep)
}

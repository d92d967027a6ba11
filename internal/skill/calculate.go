package skill

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/intent"
)

// CalculateSkill evaluates arithmetic expressions found in the input.
type CalculateSkill struct{}

func NewCalculateSkill() *CalculateSkill {
	return &CalculateSkill{}
}

func (s *CalculateSkill) Name() string { return "calculate" }

func (s *CalculateSkill) CanHandle(res core.IntentResult) bool {
	return res.Has(intent.Calculate)
}

var (
	calcPrefixRe = regexp.MustCompile(`(?i)^(what is|what's|calculate|compute|how much is)\s+`)
	wordOps      = strings.NewReplacer(
		"multiplied by", "*",
		"divided by", "/",
		"to the power of", "^",
		"plus", "+",
		"minus", "-",
		"times", "*",
	)
)

func (s *CalculateSkill) Execute(ctx context.Context, req Request) Response {
	expr := req.Intent.Entities["expression"]
	if expr == "" {
		expr = normalizeExpression(req.Text)
	}
	if expr == "" {
		return Fail(s.Name(), "no expression found")
	}

	result, err := evaluate(expr)
	if err != nil {
		return Fail(s.Name(), fmt.Sprintf("could not evaluate %q: %v", expr, err))
	}

	return Ok(s.Name(),
		fmt.Sprintf("%s = %s", expr, formatNumber(result)),
		map[string]any{"expression": expr, "result": result},
	)
}

func normalizeExpression(text string) string {
	expr := strings.ToLower(strings.TrimSpace(text))
	expr = calcPrefixRe.ReplaceAllString(expr, "")
	expr = wordOps.Replace(expr)
	expr = strings.TrimRight(expr, "?!. ")
	return strings.TrimSpace(expr)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// evaluate parses and computes an arithmetic expression with the usual
// precedence: parentheses, unary minus, ^, * /, + -.
func evaluate(expr string) (float64, error) {
	p := &exprParser{input: expr}
	v, err := p.parseAdditive()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseAdditive() (float64, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseMultiplicative()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseMultiplicative()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseMultiplicative() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	if p.peek() == '^' {
		p.pos++
		// Right-associative
		exp, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *exprParser) parseUnary() (float64, error) {
	if p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	c := p.peek()
	if c == '(' {
		p.pos++
		v, err := p.parseAdditive()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number at position %d", p.pos)
	}
	return strconv.ParseFloat(p.input[start:p.pos], 64)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

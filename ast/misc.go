package ast

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/krotik/ishlang/config"
	"github.com/krotik/ishlang/lexer"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

var stdin = bufio.NewReader(os.Stdin)

/*
Print writes Expr's rendering to stdout, with a trailing newline unless
Newline evaluates to false.
*/
type Print struct {
	Expr    value.Node
	Newline value.Node // optional, may be nil (defaults to true)
}

func (n *Print) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	nl := true
	if n.Newline != nil {
		nl, err = evalOptionalBool(env, n.Newline)
		if err != nil {
			return value.Value{}, err
		}
	}
	if nl {
		fmt.Println(v.String())
	} else {
		fmt.Print(v.String())
	}
	return v, nil
}

/*
Read reads one line from standard input and parses it as a literal value
(int, real, bool, null, string or char). An unparseable line fails with
ErrInvalidExpression.
*/
type Read struct{}

func (n *Read) Eval(env value.Env) (value.Value, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return value.Value{}, util.NewError(util.ErrFileIOError, "failed to read from standard input: "+err.Error())
	}
	line = strings.TrimRight(line, "\r\n")

	toks, err := lexer.Lex("<stdin>", line, 1)
	if err != nil {
		return value.Value{}, err
	}
	if len(toks) != 1 {
		return value.Value{}, util.NewError(util.ErrInvalidExpression, "expected a single literal from standard input")
	}
	return literalFromToken(toks[0])
}

func literalFromToken(t lexer.Token) (value.Value, error) {
	switch t.Kind {
	case lexer.Int:
		return value.NewInt(t.IntVal), nil
	case lexer.Real:
		return value.NewReal(t.RealVal), nil
	case lexer.Bool:
		return value.NewBool(t.BoolVal), nil
	case lexer.Null:
		return value.Null, nil
	case lexer.String:
		return value.NewString(t.Text), nil
	case lexer.Char:
		return value.NewChar(t.CharVal), nil
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidExpression, "cannot parse %q as a literal", t.Text)
}

/*
Random returns a non-negative random Int, bounded below Bound (exclusive)
when given, else drawn from the full non-negative int64 range.
*/
type Random struct {
	Bound value.Node // optional, may be nil
}

func (n *Random) Eval(env value.Env) (value.Value, error) {
	if n.Bound == nil {
		return value.NewInt(rand.Int63()), nil
	}
	bound, err := evalInt(env, n.Bound)
	if err != nil {
		return value.Value{}, err
	}
	if bound <= 0 {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "random bound %d must be positive", bound)
	}
	return value.NewInt(rand.Int63n(bound)), nil
}

/*
Hash returns a non-negative Int hash of Expr's printed representation,
stable across evaluations of the same value within one process.
*/
type Hash struct{ Expr value.Node }

func (n *Hash) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(v.TypeName() + ":" + v.String()))
	return value.NewInt(int64(h.Sum64() >> 1)), nil
}

/*
TimeIt repeats Expr Reps times (1..=config.MaxTimeItReps) in the current
environment and returns the mean wall-clock duration in microseconds,
optionally printing a count/sum/mean/min/max summary when Verbose
evaluates to true.
*/
type TimeIt struct {
	Reps    value.Node
	Expr    value.Node
	Verbose value.Node // optional, may be nil
}

func (n *TimeIt) Eval(env value.Env) (value.Value, error) {
	reps, err := evalInt(env, n.Reps)
	if err != nil {
		return value.Value{}, err
	}
	maxReps := int64(config.Int(config.MaxTimeItReps))
	if reps < 1 || reps > maxReps {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange,
			"timeit repetitions must be between 1 and %d, got %d", maxReps, reps)
	}
	verbose, err := evalOptionalBool(env, n.Verbose)
	if err != nil {
		return value.Value{}, err
	}

	var sum time.Duration
	min := time.Duration(1<<63 - 1)
	max := time.Duration(0)

	for i := int64(0); i < reps; i++ {
		start := time.Now()
		if _, err := n.Expr.Eval(env); err != nil {
			return value.Value{}, err
		}
		elapsed := time.Since(start)
		sum += elapsed
		if elapsed < min {
			min = elapsed
		}
		if elapsed > max {
			max = elapsed
		}
	}

	mean := sum / time.Duration(reps)
	meanUs := float64(mean.Nanoseconds()) / 1000.0

	if verbose {
		fmt.Printf("count=%d sum=%s mean=%s min=%s max=%s\n", reps, sum, mean, min, max)
	}

	return value.NewReal(meanUs), nil
}

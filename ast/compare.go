package ast

import "github.com/krotik/ishlang/value"

/*
CompKind identifies one of the binary comparison operators.
*/
type CompKind int

const (
	Eq CompKind = iota
	Ne
	Lt
	Gt
	Le
	Ge
)

/*
CompOp compares two equal-typed operands by value (a mixed Int/Real pair is
promoted to Real); mismatched, non-numeric types fail with
ErrIncompatibleTypes. Always returns a Bool.
*/
type CompOp struct {
	Kind     CompKind
	Lhs, Rhs value.Node
}

func (n *CompOp) Eval(env value.Env) (value.Value, error) {
	lv, err := n.Lhs.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := n.Rhs.Eval(env)
	if err != nil {
		return value.Value{}, err
	}

	if n.Kind == Eq || n.Kind == Ne {
		eq, err := lv.Equals(rv)
		if err != nil {
			return value.Value{}, err
		}
		if n.Kind == Ne {
			eq = !eq
		}
		return value.NewBool(eq), nil
	}

	c, err := lv.Compare(rv)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Kind {
	case Lt:
		return value.NewBool(c < 0), nil
	case Gt:
		return value.NewBool(c > 0), nil
	case Le:
		return value.NewBool(c <= 0), nil
	case Ge:
		return value.NewBool(c >= 0), nil
	}
	return value.Value{}, nil
}

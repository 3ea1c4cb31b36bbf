/*
Package value implements the ishlang runtime value model: a tagged sum
type over the scalar and compound kinds enumerated in the specification,
with reference-sharing semantics for the mutable compound kinds (String,
Array, HashMap, UserObject, File) and value semantics for scalars plus the
immutable compound kinds (Pair, Range, Closure, UserType).
*/
package value

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/ishlang/util"
)

/*
Kind identifies the runtime type of a Value.
*/
type Kind int

/*
The kinds of value a Value can hold. KindNull is the zero value so a
zero-initialized Value is Null without any explicit construction.
*/
const (
	KindNull Kind = iota
	KindInt
	KindReal
	KindChar
	KindBool
	KindString
	KindPair
	KindClosure
	KindUserType
	KindUserObject
	KindArray
	KindHashMap
	KindRange
	KindFile
)

/*
typeNames maps every Kind to the type name used by istypeof/typename/astype.
*/
var typeNames = map[Kind]string{
	KindNull:       "none",
	KindInt:        "int",
	KindReal:       "real",
	KindChar:       "char",
	KindBool:       "bool",
	KindString:     "string",
	KindPair:       "pair",
	KindClosure:    "closure",
	KindUserType:   "usertype",
	KindUserObject: "userobject",
	KindArray:      "array",
	KindHashMap:    "hashmap",
	KindRange:      "range",
	KindFile:       "file",
}

/*
nameToKind is the reverse of typeNames, used by astype/istypeof.
*/
var nameToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(typeNames))
	for k, n := range typeNames {
		m[n] = k
	}
	return m
}()

/*
stringBox is the shared, mutable backing store of a String value. Every
alias of a String Value points at the same box; clone allocates a new one.
*/
type stringBox struct {
	s string
}

/*
Pair is an immutable 2-tuple of Values.
*/
type Pair struct {
	First  Value
	Second Value
}

/*
Closure is a lambda value: its parameter names, its body (shared, never
cloned), and the environment it captured at definition time.
*/
type Closure struct {
	Params []string
	Body   Node
	Env    Env
}

/*
UserType is a struct type descriptor: a name plus its ordered member names.
*/
type UserType struct {
	Name    string
	Members []string
}

/*
UserObject is a mutable, shared instance of a UserType.
*/
type UserObject struct {
	Type   *UserType
	Fields map[string]Value
}

/*
Array is a mutable, shared, ordered sequence of Values.
*/
type Array struct {
	Items []Value
}

/*
hmEntry is one HashMap slot: the original key Value (for Keys/Items) paired
with its current Value.
*/
type hmEntry struct {
	key Value
	val Value
}

/*
HashMap is a mutable, shared mapping from Value to Value. Keys are indexed
by a canonical encoding (encodeKey) so that structurally equal keys collide
regardless of identity.
*/
type HashMap struct {
	entries map[string]hmEntry
}

/*
Range is an immutable integer range with a begin, an (exclusive) end, and a
step whose sign must match sign(end-begin).
*/
type Range struct {
	Begin int64
	End   int64
	Step  int64
}

/*
File is a non-clonable handle onto an open or closed OS file. Reader is
lazily created by the first line-oriented read.
*/
type File struct {
	Name   string
	Mode   byte
	Handle *os.File
	Reader *bufio.Reader
	Open   bool
}

/*
Value is the tagged runtime value. Scalars are stored inline; compound
kinds are stored behind a pointer so that assignment aliases the same
underlying data and clone is the only way to copy it.
*/
type Value struct {
	kind Kind
	i    int64
	r    float64
	c    byte
	b    bool
	str  *stringBox
	pair *Pair
	clos *Closure
	ut   *UserType
	uo   *UserObject
	arr  *Array
	hm   *HashMap
	rng  *Range
	file *File
}

// Constructors
// ============

/*
Null is the unit value.
*/
var Null = Value{}

func NewInt(i int64) Value     { return Value{kind: KindInt, i: i} }
func NewReal(r float64) Value  { return Value{kind: KindReal, r: r} }
func NewChar(c byte) Value     { return Value{kind: KindChar, c: c} }
func NewBool(b bool) Value     { return Value{kind: KindBool, b: b} }
func NewString(s string) Value { return Value{kind: KindString, str: &stringBox{s: s}} }

func NewPair(first, second Value) Value {
	return Value{kind: KindPair, pair: &Pair{First: first, Second: second}}
}

func NewClosure(params []string, body Node, env Env) Value {
	return Value{kind: KindClosure, clos: &Closure{Params: params, Body: body, Env: env}}
}

func NewUserType(name string, members []string) Value {
	return Value{kind: KindUserType, ut: &UserType{Name: name, Members: members}}
}

func NewUserObject(ut *UserType, fields map[string]Value) Value {
	return Value{kind: KindUserObject, uo: &UserObject{Type: ut, Fields: fields}}
}

func NewArray(items []Value) Value {
	return Value{kind: KindArray, arr: &Array{Items: items}}
}

func NewHashMap() Value {
	return Value{kind: KindHashMap, hm: &HashMap{entries: make(map[string]hmEntry)}}
}

func NewRange(begin, end, step int64) (Value, error) {
	if step == 0 {
		return Value{}, util.NewError(util.ErrInvalidExpression, "range step must not be zero")
	}
	diff := end - begin
	if diff != 0 {
		wantPos := diff > 0
		isPos := step > 0
		if wantPos != isPos {
			return Value{}, util.NewError(util.ErrInvalidExpression, "range step sign must match sign(end-begin)")
		}
	}
	return Value{kind: KindRange, rng: &Range{Begin: begin, End: end, Step: step}}, nil
}

func NewFile(name string, mode byte, handle *os.File) Value {
	return Value{kind: KindFile, file: &File{Name: name, Mode: mode, Handle: handle, Open: true}}
}

// Accessors
// =========

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) TypeName() string {
	n, ok := typeNames[v.kind]
	errorutil.AssertTrue(ok, fmt.Sprintf("Value has unknown kind: %v", v.kind))
	return n
}

/*
KindByName resolves a type name (as used by istypeof/astype) to a Kind.
*/
func KindByName(name string) (Kind, bool) {
	k, ok := nameToKind[name]
	return k, ok
}

func (v Value) Int() int64 {
	errorutil.AssertTrue(v.kind == KindInt, "Value is not an int")
	return v.i
}

func (v Value) Real() float64 {
	errorutil.AssertTrue(v.kind == KindReal, "Value is not a real")
	return v.r
}

func (v Value) Char() byte {
	errorutil.AssertTrue(v.kind == KindChar, "Value is not a char")
	return v.c
}

func (v Value) Bool() bool {
	errorutil.AssertTrue(v.kind == KindBool, "Value is not a bool")
	return v.b
}

func (v Value) Str() string {
	errorutil.AssertTrue(v.kind == KindString, "Value is not a string")
	return v.str.s
}

func (v Value) SetStr(s string) {
	errorutil.AssertTrue(v.kind == KindString, "Value is not a string")
	v.str.s = s
}

func (v Value) Pair() *Pair { errorutil.AssertTrue(v.kind == KindPair, "Value is not a pair"); return v.pair }

func (v Value) Closure() *Closure {
	errorutil.AssertTrue(v.kind == KindClosure, "Value is not a closure")
	return v.clos
}

func (v Value) UserType() *UserType {
	errorutil.AssertTrue(v.kind == KindUserType, "Value is not a usertype")
	return v.ut
}

func (v Value) UserObject() *UserObject {
	errorutil.AssertTrue(v.kind == KindUserObject, "Value is not a userobject")
	return v.uo
}

func (v Value) Array() *Array {
	errorutil.AssertTrue(v.kind == KindArray, "Value is not an array")
	return v.arr
}

func (v Value) HashMap() *HashMap {
	errorutil.AssertTrue(v.kind == KindHashMap, "Value is not a hashmap")
	return v.hm
}

func (v Value) Range() *Range {
	errorutil.AssertTrue(v.kind == KindRange, "Value is not a range")
	return v.rng
}

func (v Value) File() *File {
	errorutil.AssertTrue(v.kind == KindFile, "Value is not a file")
	return v.file
}

func (r *Range) Len() int64 {
	if r.End == r.Begin {
		return 0
	}
	diff := r.End - r.Begin
	if diff < 0 {
		diff = -diff
	}
	step := r.Step
	if step < 0 {
		step = -step
	}
	n := diff / step
	if diff%step != 0 {
		n++
	}
	return n
}

/*
Expand materializes a Range as the ordered slice of Values it describes.
*/
func (r *Range) Expand() []Value {
	n := r.Len()
	out := make([]Value, 0, n)
	v := r.Begin
	for i := int64(0); i < n; i++ {
		out = append(out, NewInt(v))
		v += r.Step
	}
	return out
}

// Cloning
// =======

/*
Clone gives String, Array, HashMap and UserObject new storage of their own
(one level deep: the items, entries and fields are shared with the
original, not cloned themselves), gives Closure and UserType a fresh
descriptor, reuses the receiver for scalars, Pair and Range, and rejects
File, which cannot be cloned.
*/
func (v Value) Clone() (Value, error) {
	switch v.kind {
	case KindString:
		return NewString(v.str.s), nil

	case KindArray:
		items := make([]Value, len(v.arr.Items))
		copy(items, v.arr.Items)
		return NewArray(items), nil

	case KindHashMap:
		entries := make(map[string]hmEntry, len(v.hm.entries))
		for k, e := range v.hm.entries {
			entries[k] = e
		}
		return Value{kind: KindHashMap, hm: &HashMap{entries: entries}}, nil

	case KindUserObject:
		fields := make(map[string]Value, len(v.uo.Fields))
		for k, f := range v.uo.Fields {
			fields[k] = f
		}
		return NewUserObject(v.uo.Type, fields), nil

	case KindClosure:
		return NewClosure(append([]string(nil), v.clos.Params...), v.clos.Body, v.clos.Env), nil

	case KindUserType:
		return NewUserType(v.ut.Name, append([]string(nil), v.ut.Members...)), nil

	case KindFile:
		return Value{}, util.NewError(util.ErrInvalidOperandType, "file values cannot be cloned")

	default:
		// Scalars, Pair and Range are reused as-is: they carry value
		// semantics already, so a clone and the original are indistinguishable.
		return v, nil
	}
}

// Equality and ordering
// ======================

/*
Equals implements the == and != operators: equal-typed operands compared by
value, with a numeric Int/Real pair promoted to Real. Mismatched,
non-numeric types fail with ErrIncompatibleTypes.
*/
func (v Value) Equals(other Value) (bool, error) {
	if v.kind != other.kind {
		if isNumeric(v.kind) && isNumeric(other.kind) {
			return v.asFloat() == other.asFloat(), nil
		}
		return false, util.NewErrorf(util.ErrIncompatibleTypes,
			"cannot compare %v and %v", v.TypeName(), other.TypeName())
	}

	switch v.kind {
	case KindNull:
		return true, nil
	case KindInt:
		return v.i == other.i, nil
	case KindReal:
		return v.r == other.r, nil
	case KindChar:
		return v.c == other.c, nil
	case KindBool:
		return v.b == other.b, nil
	case KindString:
		return v.str.s == other.str.s, nil
	case KindPair:
		fe, err := v.pair.First.Equals(other.pair.First)
		if err != nil || !fe {
			return false, nil
		}
		se, err := v.pair.Second.Equals(other.pair.Second)
		if err != nil {
			return false, nil
		}
		return se, nil
	case KindRange:
		return *v.rng == *other.rng, nil
	case KindArray:
		if v.arr == other.arr {
			return true, nil
		}
		if len(v.arr.Items) != len(other.arr.Items) {
			return false, nil
		}
		for i := range v.arr.Items {
			eq, err := v.arr.Items[i].Equals(other.arr.Items[i])
			if err != nil || !eq {
				return false, nil
			}
		}
		return true, nil
	case KindHashMap:
		if v.hm == other.hm {
			return true, nil
		}
		if len(v.hm.entries) != len(other.hm.entries) {
			return false, nil
		}
		for k, e := range v.hm.entries {
			oe, ok := other.hm.entries[k]
			if !ok {
				return false, nil
			}
			eq, err := e.val.Equals(oe.val)
			if err != nil || !eq {
				return false, nil
			}
		}
		return true, nil
	case KindUserType:
		return v.ut == other.ut, nil
	case KindUserObject:
		return v.uo == other.uo, nil
	case KindClosure:
		return v.clos == other.clos, nil
	case KindFile:
		return v.file == other.file, nil
	}

	return false, util.NewErrorf(util.ErrInvalidOperandType, "cannot compare values of type %v", v.TypeName())
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindReal }

func (v Value) asFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.r
}

/*
Compare implements the ordering operators (<, >, <=, >=) for the orderable
kinds: Int, Real (mixed promoted to Real), Char, Bool and String. Returns
-1, 0 or 1. Any other kind, or a type mismatch that is not a numeric pair,
fails.
*/
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		if isNumeric(v.kind) && isNumeric(other.kind) {
			return compareFloat(v.asFloat(), other.asFloat()), nil
		}
		return 0, util.NewErrorf(util.ErrIncompatibleTypes,
			"cannot compare %v and %v", v.TypeName(), other.TypeName())
	}

	switch v.kind {
	case KindInt:
		return compareInt(v.i, other.i), nil
	case KindReal:
		return compareFloat(v.r, other.r), nil
	case KindChar:
		return compareInt(int64(v.c), int64(other.c)), nil
	case KindBool:
		return compareBool(v.b, other.b), nil
	case KindString:
		return strings.Compare(v.str.s, other.str.s), nil
	}

	return 0, util.NewErrorf(util.ErrInvalidOperandType, "values of type %v cannot be ordered", v.TypeName())
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

// HashMap operations
// ==================

/*
encodeKey produces a canonical string encoding of a Value for use as a
HashMap index. Only the kinds that the original implementation allows as
ordered map keys - scalars, String, Pair and Range - are supported;
anything else fails with ErrInvalidOperandType.
*/
func encodeKey(v Value) (string, error) {
	switch v.kind {
	case KindNull:
		return "n", nil
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10), nil
	case KindReal:
		return "r:" + strconv.FormatFloat(v.r, 'g', -1, 64), nil
	case KindChar:
		return "c:" + string(v.c), nil
	case KindBool:
		return "b:" + strconv.FormatBool(v.b), nil
	case KindString:
		return "s:" + v.str.s, nil
	case KindPair:
		k1, err := encodeKey(v.pair.First)
		if err != nil {
			return "", err
		}
		k2, err := encodeKey(v.pair.Second)
		if err != nil {
			return "", err
		}
		return "p:(" + k1 + "," + k2 + ")", nil
	case KindRange:
		return fmt.Sprintf("g:%d:%d:%d", v.rng.Begin, v.rng.End, v.rng.Step), nil
	}
	return "", util.NewErrorf(util.ErrInvalidOperandType, "values of type %v cannot be used as a hashmap key", v.TypeName())
}

func (h *HashMap) Len() int { return len(h.entries) }

func (h *HashMap) Set(key, val Value) error {
	k, err := encodeKey(key)
	if err != nil {
		return err
	}
	h.entries[k] = hmEntry{key: key, val: val}
	return nil
}

func (h *HashMap) Get(key Value) (Value, bool, error) {
	k, err := encodeKey(key)
	if err != nil {
		return Value{}, false, err
	}
	e, ok := h.entries[k]
	return e.val, ok, nil
}

func (h *HashMap) Remove(key Value) error {
	k, err := encodeKey(key)
	if err != nil {
		return err
	}
	delete(h.entries, k)
	return nil
}

func (h *HashMap) Clear() { h.entries = make(map[string]hmEntry) }

func (h *HashMap) Keys() []Value {
	out := make([]Value, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.key)
	}
	return out
}

func (h *HashMap) Values() []Value {
	out := make([]Value, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.val)
	}
	return out
}

func (h *HashMap) Items() []Value {
	out := make([]Value, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, NewPair(e.key, e.val))
	}
	return out
}

// AsType conversion
// =================

/*
AsType converts v to the named type where a sensible conversion exists,
failing with ErrInvalidAsType otherwise.
*/
func (v Value) AsType(name string) (Value, error) {
	target, ok := KindByName(name)
	if !ok {
		return Value{}, util.NewErrorf(util.ErrInvalidAsType, "unknown type name %q", name)
	}
	if target == v.kind {
		return v, nil
	}

	switch target {
	case KindInt:
		switch v.kind {
		case KindReal:
			return NewInt(int64(v.r)), nil
		case KindChar:
			return NewInt(int64(v.c)), nil
		case KindBool:
			if v.b {
				return NewInt(1), nil
			}
			return NewInt(0), nil
		case KindString:
			n, err := strconv.ParseInt(strings.TrimSpace(v.str.s), 10, 64)
			if err != nil {
				return Value{}, util.NewErrorf(util.ErrInvalidAsType, "cannot convert %q to int", v.str.s)
			}
			return NewInt(n), nil
		}
	case KindReal:
		switch v.kind {
		case KindInt:
			return NewReal(float64(v.i)), nil
		case KindString:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.str.s), 64)
			if err != nil {
				return Value{}, util.NewErrorf(util.ErrInvalidAsType, "cannot convert %q to real", v.str.s)
			}
			return NewReal(f), nil
		}
	case KindChar:
		switch v.kind {
		case KindInt:
			return NewChar(byte(v.i)), nil
		case KindString:
			if len(v.str.s) == 1 {
				return NewChar(v.str.s[0]), nil
			}
		}
	case KindBool:
		switch v.kind {
		case KindInt:
			return NewBool(v.i != 0), nil
		case KindString:
			b, err := strconv.ParseBool(v.str.s)
			if err != nil {
				return Value{}, util.NewErrorf(util.ErrInvalidAsType, "cannot convert %q to bool", v.str.s)
			}
			return NewBool(b), nil
		}
	case KindString:
		return NewString(v.String()), nil
	}

	return Value{}, util.NewErrorf(util.ErrInvalidAsType, "cannot convert %v to %v", v.TypeName(), name)
}

// Printing
// ========

/*
String renders v the way print/println display it.
*/
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.r, 'g', -1, 64)
	case KindChar:
		return fmt.Sprintf("'%c'", v.c)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.str.s
	case KindPair:
		return fmt.Sprintf("(%v . %v)", v.pair.First, v.pair.Second)
	case KindClosure:
		return fmt.Sprintf("<closure/%d>", len(v.clos.Params))
	case KindUserType:
		return fmt.Sprintf("<type %s>", v.ut.Name)
	case KindUserObject:
		return fmt.Sprintf("<instance %s>", v.uo.Type.Name)
	case KindArray:
		parts := make([]string, len(v.arr.Items))
		for i, it := range v.arr.Items {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindHashMap:
		keys := v.hm.Keys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _, _ := v.hm.Get(k)
			parts = append(parts, fmt.Sprintf("%v:%v", k, val))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, " ") + "}"
	case KindRange:
		return fmt.Sprintf("<range %d %d %d>", v.rng.Begin, v.rng.End, v.rng.Step)
	case KindFile:
		return fmt.Sprintf("<file %s>", v.file.Name)
	}
	return "<unknown>"
}

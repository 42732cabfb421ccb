// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package adt

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// Domain is the tagged variant described in: Bool, Int, Set, MSet, Tuple,
// Record, Matrix, Function or an unresolved Reference.
type Domain interface {
	isDomain()
	// Kind returns the Kind this domain produces, or UnknownKind if the
	// domain is an unresolved Reference.
	Kind() Kind
	String() string
}

// DomainOpErrorKind enumerates the sub-kinds of errors.DomainOp named in
type DomainOpErrorKind int

const (
	Unbounded DomainOpErrorKind = iota
	NotInteger
	WrongType
	NotGround
	TooLarge
	ConflictingAttrs
)

func (k DomainOpErrorKind) String() string {
	switch k {
	case Unbounded:
		return "Unbounded"
	case NotInteger:
		return "NotInteger"
	case WrongType:
		return "WrongType"
	case NotGround:
		return "NotGround"
	case TooLarge:
		return "TooLarge"
	case ConflictingAttrs:
		return "ConflictingAttrs"
	default:
		return "UnknownDomainOpError"
	}
}

// DomainOpError is the recoverable error raised by domain operations
// (union, intersection, containment, enumeration, size counting):
// recoverable within rules, where it is turned into RuleNotApplicable by
// the rule's caller rather than surfaced as a hard failure.
type DomainOpError struct {
	SubKind DomainOpErrorKind
	Msg     string
}

func (e *DomainOpError) Error() string {
	return fmt.Sprintf("%s: %s", e.SubKind, e.Msg)
}

func newDomainErr(k DomainOpErrorKind, format string, args ...any) *DomainOpError {
	return &DomainOpError{SubKind: k, Msg: fmt.Sprintf(format, args...)}
}

// BoolDomain is the domain of booleans.
type BoolDomain struct{}

func (BoolDomain) isDomain()     {}
func (BoolDomain) Kind() Kind    { return BoolKind }
func (BoolDomain) String() string { return "bool" }

// Range is one contiguous piece of an IntDomain's range list.
type Range struct {
	// Kind distinguishes Single/Bounded/UnboundedL/UnboundedR/Unbounded;
	// Lo/Hi are only meaningful for the relevant Kind.
	Kind    RangeKind
	Lo, Hi  int64
}

type RangeKind int

const (
	RangeSingle RangeKind = iota
	RangeBounded
	RangeUnboundedL // ..hi
	RangeUnboundedR // lo..
	RangeUnbounded  // int, no bound at all
)

func Single(v int64) Range          { return Range{Kind: RangeSingle, Lo: v, Hi: v} }
func Bounded(lo, hi int64) Range    { return Range{Kind: RangeBounded, Lo: lo, Hi: hi} }
func UnboundedL(hi int64) Range     { return Range{Kind: RangeUnboundedL, Hi: hi} }
func UnboundedR(lo int64) Range     { return Range{Kind: RangeUnboundedR, Lo: lo} }
func Unbounded() Range              { return Range{Kind: RangeUnbounded} }

func (r Range) String() string {
	switch r.Kind {
	case RangeSingle:
		return fmt.Sprintf("%d", r.Lo)
	case RangeBounded:
		return fmt.Sprintf("%d..%d", r.Lo, r.Hi)
	case RangeUnboundedL:
		return fmt.Sprintf("..%d", r.Hi)
	case RangeUnboundedR:
		return fmt.Sprintf("%d..", r.Lo)
	default:
		return "int"
	}
}

// contains reports whether v lies within the range.
func (r Range) contains(v int64) bool {
	switch r.Kind {
	case RangeSingle:
		return v == r.Lo
	case RangeBounded:
		return v >= r.Lo && v <= r.Hi
	case RangeUnboundedL:
		return v <= r.Hi
	case RangeUnboundedR:
		return v >= r.Lo
	default:
		return true
	}
}

func (r Range) bounded() bool {
	return r.Kind == RangeSingle || r.Kind == RangeBounded
}

// overlapsOrAdjacent reports whether two bounded ranges can be merged into
// one contiguous range (used by union).
func overlapsOrAdjacent(a, b Range) bool {
	if !a.bounded() || !b.bounded() {
		return true // conservative: unbounded pieces always merge
	}
	lo, hi := a.Lo, a.Hi
	return b.Lo <= hi+1 && b.Hi >= lo-1
}

// IntDomain is `int(ranges)`: a list of Single/Bounded/UnboundedL/
// UnboundedR/Unbounded pieces, as in
type IntDomain struct {
	Ranges []Range
}

func (IntDomain) isDomain()     {}
func (IntDomain) Kind() Kind    { return IntKind }

func (d IntDomain) String() string {
	if len(d.Ranges) == 0 {
		return "int()"
	}
	s := "int("
	for i, r := range d.Ranges {
		if i > 0 {
			s += ","
		}
		s += r.String()
	}
	return s + ")"
}

// Normalize sorts and merges overlapping/adjacent ranges, the
// representation invariant relied on by Union/Intersect/Contains/Size.
func (d IntDomain) Normalize() IntDomain {
	rs := append([]Range(nil), d.Ranges...)
	for i := 0; i < len(rs); i++ {
		for j := i + 1; j < len(rs); j++ {
			if less(rs[j], rs[i]) {
				rs[i], rs[j] = rs[j], rs[i]
			}
		}
	}
	out := rs[:0:0]
	for _, r := range rs {
		if n := len(out); n > 0 && overlapsOrAdjacent(out[n-1], r) {
			out[n-1] = mergeRange(out[n-1], r)
			continue
		}
		out = append(out, r)
	}
	return IntDomain{Ranges: out}
}

func less(a, b Range) bool {
	av, bv := rangeSortKey(a), rangeSortKey(b)
	return av < bv
}

func rangeSortKey(r Range) int64 {
	switch r.Kind {
	case RangeUnboundedL:
		return math.MinInt64
	case RangeUnboundedR, RangeUnbounded:
		return math.MinInt64 + 1
	default:
		return r.Lo
	}
}

func mergeRange(a, b Range) Range {
	if a.Kind == RangeUnbounded || b.Kind == RangeUnbounded {
		return Unbounded()
	}
	if a.Kind == RangeUnboundedL || b.Kind == RangeUnboundedL {
		hi := a.Hi
		if b.Kind == RangeUnboundedL && (a.Kind != RangeUnboundedL || b.Hi > hi) {
			hi = b.Hi
		}
		return UnboundedL(hi)
	}
	if a.Kind == RangeUnboundedR || b.Kind == RangeUnboundedR {
		lo := a.Lo
		if b.Kind == RangeUnboundedR && (a.Kind != RangeUnboundedR || b.Lo < lo) {
			lo = b.Lo
		}
		return UnboundedR(lo)
	}
	lo, hi := a.Lo, a.Hi
	if b.Lo < lo {
		lo = b.Lo
	}
	if b.Hi > hi {
		hi = b.Hi
	}
	if lo == hi {
		return Single(lo)
	}
	return Bounded(lo, hi)
}

// Union returns the normalized union of two int domains.
func (d IntDomain) Union(o IntDomain) IntDomain {
	return IntDomain{Ranges: append(append([]Range(nil), d.Ranges...), o.Ranges...)}.Normalize()
}

// Intersect returns the normalized intersection of two int domains.
func (d IntDomain) Intersect(o IntDomain) (IntDomain, error) {
	a, b := d.Normalize(), o.Normalize()
	var out []Range
	for _, ra := range a.Ranges {
		for _, rb := range b.Ranges {
			if r, ok := intersectRange(ra, rb); ok {
				out = append(out, r)
			}
		}
	}
	return IntDomain{Ranges: out}.Normalize(), nil
}

func intersectRange(a, b Range) (Range, bool) {
	lo, hasLo := int64(math.MinInt64), false
	hi, hasHi := int64(math.MaxInt64), false
	for _, r := range []Range{a, b} {
		switch r.Kind {
		case RangeSingle, RangeBounded:
			if !hasLo || r.Lo > lo {
				lo = r.Lo
			}
			if !hasHi || r.Hi < hi {
				hi = r.Hi
			}
			hasLo, hasHi = true, true
		case RangeUnboundedL:
			if !hasHi || r.Hi < hi {
				hi = r.Hi
			}
			hasHi = true
		case RangeUnboundedR:
			if !hasLo || r.Lo > lo {
				lo = r.Lo
			}
			hasLo = true
		}
	}
	switch {
	case hasLo && hasHi:
		if lo > hi {
			return Range{}, false
		}
		if lo == hi {
			return Single(lo), true
		}
		return Bounded(lo, hi), true
	case hasHi:
		return UnboundedL(hi), true
	case hasLo:
		return UnboundedR(lo), true
	default:
		return Unbounded(), true
	}
}

// Contains reports whether v is a member of the domain.
func (d IntDomain) Contains(v int64) bool {
	for _, r := range d.Ranges {
		if r.contains(v) {
			return true
		}
	}
	return false
}

// Bounded reports whether every range piece is Single or Bounded, which is
// required before Enumerate or Size can run.
func (d IntDomain) Bounded() bool {
	for _, r := range d.Ranges {
		if !r.bounded() {
			return false
		}
	}
	return true
}

// Enumerate lists every value in the domain in ascending order. It fails
// with DomainOpError{Unbounded} if any range piece is unbounded.
func (d IntDomain) Enumerate() ([]int64, error) {
	if !d.Bounded() {
		return nil, newDomainErr(Unbounded, "cannot enumerate unbounded int domain %s", d)
	}
	norm := d.Normalize()
	var out []int64
	for _, r := range norm.Ranges {
		for v := r.Lo; v <= r.Hi; v++ {
			out = append(out, v)
		}
	}
	return out, nil
}

// Size returns the number of values in the domain, detecting overflow via
// apd's arbitrary-precision arithmetic rather than plain int64 addition so
// that a domain with huge bounded ranges reports DomainOpError{TooLarge}
// instead of silently wrapping.
func (d IntDomain) Size() (int64, error) {
	if !d.Bounded() {
		return 0, newDomainErr(Unbounded, "cannot size unbounded int domain %s", d)
	}
	total := apd.New(0, 0)
	ctx := apd.BaseContext.WithPrecision(50)
	one := apd.New(1, 0)
	for _, r := range d.Normalize().Ranges {
		width := apd.New(r.Hi-r.Lo, 0)
		width.Coeff.Add(&width.Coeff, &one.Coeff)
		if _, err := ctx.Add(total, total, width); err != nil {
			return 0, newDomainErr(TooLarge, "overflow while sizing %s: %v", d, err)
		}
	}
	i64, err := total.Int64()
	if err != nil {
		return 0, newDomainErr(TooLarge, "domain %s has more than MaxInt64 values", d)
	}
	return i64, nil
}

// SetAttrs constrains a Set/MSet domain's cardinality (`size`, `minSize`,
// `maxSize`); a zero value means "unconstrained".
type SetAttrs struct {
	Size, MinSize, MaxSize *int64
}

func (a SetAttrs) conflictsWith(b SetAttrs) bool {
	if a.Size != nil && b.Size != nil && *a.Size != *b.Size {
		return true
	}
	if a.MinSize != nil && a.MaxSize != nil && *a.MinSize > *a.MaxSize {
		return true
	}
	return false
}

// SetDomain is `set(attrs, elem)`.
type SetDomain struct {
	Attrs SetAttrs
	Elem  Domain
}

func (SetDomain) isDomain()      {}
func (SetDomain) Kind() Kind     { return SetKind }
func (d SetDomain) String() string { return fmt.Sprintf("set of %s", d.Elem) }

// MSetDomain is `mset(attrs, elem)`.
type MSetDomain struct {
	Attrs SetAttrs
	Elem  Domain
}

func (MSetDomain) isDomain()      {}
func (MSetDomain) Kind() Kind     { return MSetKind }
func (d MSetDomain) String() string { return fmt.Sprintf("mset of %s", d.Elem) }

// TupleDomain is `tuple(elems)`.
type TupleDomain struct {
	Elems []Domain
}

func (TupleDomain) isDomain()  {}
func (TupleDomain) Kind() Kind { return TupleKind }
func (d TupleDomain) String() string {
	s := "tuple("
	for i, e := range d.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// RecordEntry is one named field of a RecordDomain.
type RecordEntry struct {
	Name   Name
	Domain Domain
}

// RecordDomain is `record(fields)`.
type RecordDomain struct {
	Fields []RecordEntry
}

func (RecordDomain) isDomain()  {}
func (RecordDomain) Kind() Kind { return RecordKind }
func (d RecordDomain) String() string {
	s := "record("
	for i, f := range d.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name.String() + ": " + f.Domain.String()
	}
	return s + ")"
}

// MatrixDomain is `matrix indexed by [indices] of elem`.
type MatrixDomain struct {
	Elem    Domain
	Indices []Domain
}

func (MatrixDomain) isDomain()  {}
func (MatrixDomain) Kind() Kind { return MatrixKind }
func (d MatrixDomain) String() string {
	return fmt.Sprintf("matrix indexed by %v of %s", d.Indices, d.Elem)
}

// FunctionDomain is `function dom --> codom`.
type FunctionDomain struct {
	Domain, Codomain Domain
}

func (FunctionDomain) isDomain()  {}
func (FunctionDomain) Kind() Kind { return FunctionKind }
func (d FunctionDomain) String() string {
	return fmt.Sprintf("function %s --> %s", d.Domain, d.Codomain)
}

// ReferenceDomain is an unresolved `Reference(name)`, resolved against a
// domain letting in the symbol table chain by Resolve.
type ReferenceDomain struct {
	Name Name
}

func (ReferenceDomain) isDomain()      {}
func (ReferenceDomain) Kind() Kind     { return UnknownKind }
func (d ReferenceDomain) String() string { return "&" + d.Name.String() }

// IsGround reports whether d has no Reference nodes anywhere within it.
func IsGround(d Domain) bool {
	switch d := d.(type) {
	case ReferenceDomain:
		return false
	case SetDomain:
		return IsGround(d.Elem)
	case MSetDomain:
		return IsGround(d.Elem)
	case TupleDomain:
		for _, e := range d.Elems {
			if !IsGround(e) {
				return false
			}
		}
		return true
	case RecordDomain:
		for _, f := range d.Fields {
			if !IsGround(f.Domain) {
				return false
			}
		}
		return true
	case MatrixDomain:
		if !IsGround(d.Elem) {
			return false
		}
		for _, idx := range d.Indices {
			if !IsGround(idx) {
				return false
			}
		}
		return true
	case FunctionDomain:
		return IsGround(d.Domain) && IsGround(d.Codomain)
	default:
		return true
	}
}

// Resolve walks d and eliminates Reference nodes by looking them up as
// domain lettings in symbols, failing with DomainOpError{NotGround} if a
// reference is dangling or if resolution would loop through a cycle of
// domain lettings. Resolve is idempotent on an already-ground domain.
func Resolve(d Domain, symbols *SymbolTable) (Domain, error) {
	return resolveSeen(d, symbols, map[Name]bool{})
}

func resolveSeen(d Domain, symbols *SymbolTable, seen map[Name]bool) (Domain, error) {
	switch d := d.(type) {
	case ReferenceDomain:
		if seen[d.Name] {
			return nil, newDomainErr(NotGround, "cyclic domain letting %s", d.Name)
		}
		decl, ok := symbols.Lookup(d.Name)
		if !ok {
			return nil, newDomainErr(NotGround, "dangling domain reference %s", d.Name)
		}
		letting, ok := decl.(*DomainLetting)
		if !ok {
			return nil, newDomainErr(WrongType, "%s is not a domain letting", d.Name)
		}
		seen2 := map[Name]bool{d.Name: true}
		for k := range seen {
			seen2[k] = true
		}
		return resolveSeen(letting.Domain, symbols, seen2)
	case SetDomain:
		e, err := resolveSeen(d.Elem, symbols, seen)
		if err != nil {
			return nil, err
		}
		return SetDomain{Attrs: d.Attrs, Elem: e}, nil
	case MSetDomain:
		e, err := resolveSeen(d.Elem, symbols, seen)
		if err != nil {
			return nil, err
		}
		return MSetDomain{Attrs: d.Attrs, Elem: e}, nil
	case TupleDomain:
		elems := make([]Domain, len(d.Elems))
		for i, e := range d.Elems {
			r, err := resolveSeen(e, symbols, seen)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		return TupleDomain{Elems: elems}, nil
	case RecordDomain:
		fields := make([]RecordEntry, len(d.Fields))
		for i, f := range d.Fields {
			r, err := resolveSeen(f.Domain, symbols, seen)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordEntry{Name: f.Name, Domain: r}
		}
		return RecordDomain{Fields: fields}, nil
	case MatrixDomain:
		elem, err := resolveSeen(d.Elem, symbols, seen)
		if err != nil {
			return nil, err
		}
		indices := make([]Domain, len(d.Indices))
		for i, idx := range d.Indices {
			r, err := resolveSeen(idx, symbols, seen)
			if err != nil {
				return nil, err
			}
			indices[i] = r
		}
		return MatrixDomain{Elem: elem, Indices: indices}, nil
	case FunctionDomain:
		dom, err := resolveSeen(d.Domain, symbols, seen)
		if err != nil {
			return nil, err
		}
		codom, err := resolveSeen(d.Codomain, symbols, seen)
		if err != nil {
			return nil, err
		}
		return FunctionDomain{Domain: dom, Codomain: codom}, nil
	default:
		return d, nil
	}
}

func intPtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func setAttrsEqual(a, b SetAttrs) bool {
	return intPtrEqual(a.Size, b.Size) && intPtrEqual(a.MinSize, b.MinSize) && intPtrEqual(a.MaxSize, b.MaxSize)
}

// DomainsEqual reports structural equality of two domains, recursing
// through the composite shapes the way StructurallyEqual does for Expr.
func DomainsEqual(a, b Domain) bool {
	switch a := a.(type) {
	case BoolDomain:
		_, ok := b.(BoolDomain)
		return ok
	case IntDomain:
		b, ok := b.(IntDomain)
		if !ok || len(a.Ranges) != len(b.Ranges) {
			return false
		}
		for i, r := range a.Ranges {
			if r != b.Ranges[i] {
				return false
			}
		}
		return true
	case SetDomain:
		b, ok := b.(SetDomain)
		return ok && setAttrsEqual(a.Attrs, b.Attrs) && DomainsEqual(a.Elem, b.Elem)
	case MSetDomain:
		b, ok := b.(MSetDomain)
		return ok && setAttrsEqual(a.Attrs, b.Attrs) && DomainsEqual(a.Elem, b.Elem)
	case TupleDomain:
		b, ok := b.(TupleDomain)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i, e := range a.Elems {
			if !DomainsEqual(e, b.Elems[i]) {
				return false
			}
		}
		return true
	case RecordDomain:
		b, ok := b.(RecordDomain)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			if !NamesEqual(f.Name, b.Fields[i].Name) || !DomainsEqual(f.Domain, b.Fields[i].Domain) {
				return false
			}
		}
		return true
	case MatrixDomain:
		b, ok := b.(MatrixDomain)
		if !ok || len(a.Indices) != len(b.Indices) || !DomainsEqual(a.Elem, b.Elem) {
			return false
		}
		for i, idx := range a.Indices {
			if !DomainsEqual(idx, b.Indices[i]) {
				return false
			}
		}
		return true
	case FunctionDomain:
		b, ok := b.(FunctionDomain)
		return ok && DomainsEqual(a.Domain, b.Domain) && DomainsEqual(a.Codomain, b.Codomain)
	case ReferenceDomain:
		b, ok := b.(ReferenceDomain)
		return ok && NamesEqual(a.Name, b.Name)
	default:
		return false
	}
}

package veloxcore

import (
	"fmt"

	"github.com/brigantine-data/veloxcore/internal/joinengine"
	"github.com/brigantine-data/veloxcore/internal/parallel"
)

// JoinType identifies the kind of join a JoinOptions describes.
type JoinType int

const (
	InnerJoinType JoinType = iota
	LeftJoinType
	RightJoinType
	OuterJoinType
	CrossJoinType
)

// JoinOptions configures a Table join (spec §4.3 equi-join over a single
// Int64 key column — the scope internal/joinengine's hash tables target).
type JoinOptions struct {
	on      []string
	leftOn  []string
	rightOn []string
	suffix  string
	how     JoinType
}

// DefaultJoinOptions returns InnerJoinType options with the default
// "_right" collision suffix.
func DefaultJoinOptions() JoinOptions {
	return JoinOptions{suffix: "_right", how: InnerJoinType}
}

// On creates join options for joining on same-named columns in both Tables.
func On(columns ...string) JoinOptions {
	return JoinOptions{on: columns, suffix: "_right", how: InnerJoinType}
}

// LeftOn creates join options naming the left Table's join column(s);
// pair with RightOn to complete it.
func LeftOn(columns ...string) JoinOptions {
	return JoinOptions{leftOn: columns, suffix: "_right", how: InnerJoinType}
}

// RightOn sets the right Table's join column(s).
func (o JoinOptions) RightOn(columns ...string) JoinOptions {
	o.rightOn = columns
	return o
}

// WithSuffix sets the suffix appended to right-side column names that
// collide with a left-side name.
func (o JoinOptions) WithSuffix(suffix string) JoinOptions {
	o.suffix = suffix
	return o
}

func (o JoinOptions) resolve(left, right *Table) (leftKey, rightKey string, err error) {
	switch {
	case len(o.on) == 1:
		leftKey, rightKey = o.on[0], o.on[0]
	case len(o.leftOn) == 1 && len(o.rightOn) == 1:
		leftKey, rightKey = o.leftOn[0], o.rightOn[0]
	case len(o.on) > 1 || len(o.leftOn) > 1:
		return "", "", fmt.Errorf("%w: multi-column join is not supported", ErrUnsupportedDType)
	default:
		return "", "", fmt.Errorf("%w: must specify On or both LeftOn and RightOn", ErrUnsupportedDType)
	}
	if left.ColumnByName(leftKey) == nil {
		return "", "", fmt.Errorf("%w: column %q not found in left table", ErrOutOfRange, leftKey)
	}
	if right.ColumnByName(rightKey) == nil {
		return "", "", fmt.Errorf("%w: column %q not found in right table", ErrOutOfRange, rightKey)
	}
	return leftKey, rightKey, nil
}

// Join performs an inner equi-join against other.
func (t *Table) Join(other *Table, opts JoinOptions) (*Table, error) {
	opts.how = InnerJoinType
	return t.joinWith(other, opts)
}

// LeftJoin performs a left equi-join: every left row survives, null-filled
// on the right where unmatched.
func (t *Table) LeftJoin(other *Table, opts JoinOptions) (*Table, error) {
	opts.how = LeftJoinType
	return t.joinWith(other, opts)
}

// RightJoin performs a right equi-join as a LeftJoin with sides swapped:
// the result lists other's columns first, then t's.
func (t *Table) RightJoin(other *Table, opts JoinOptions) (*Table, error) {
	swapped := opts
	swapped.on, swapped.leftOn, swapped.rightOn = opts.on, opts.rightOn, opts.leftOn
	return other.LeftJoin(t, swapped)
}

// OuterJoin performs a full outer equi-join: the union of LeftJoin and the
// right-only rows RightJoin would add, each right-only row null-filled on
// the left.
func (t *Table) OuterJoin(other *Table, opts JoinOptions) (*Table, error) {
	left, err := t.LeftJoin(other, opts)
	if err != nil {
		return nil, err
	}
	leftKey, rightKey, err := opts.resolve(t, other)
	if err != nil {
		return nil, err
	}
	matchedBuild := make(map[int32]bool)
	buildKeys := t.ColumnByName(leftKey).ToInt64()
	probeKeys := other.ColumnByName(rightKey).ToInt64()
	res := joinengine.InnerJoin(buildKeys, probeKeys)
	for _, p := range res.ProbeIdx {
		matchedBuild[p] = true
	}
	var unmatchedRight []int32
	for i := range probeKeys {
		if !matchedBuild[int32(i)] {
			unmatchedRight = append(unmatchedRight, int32(i))
		}
	}
	if len(unmatchedRight) == 0 {
		return left, nil
	}
	rightOnly, err := other.Gather(unmatchedRight)
	if err != nil {
		return nil, err
	}
	nullLeft := make([]*Column, len(t.Columns))
	nullIdx := make([]int32, len(unmatchedRight))
	for i := range nullIdx {
		nullIdx[i] = -1
	}
	for i, c := range t.Columns {
		if c.Name() == leftKey && leftKey == rightKey {
			// On(...) dedup drops the right copy of the shared key column
			// from the output, so the surviving (left) copy must carry the
			// right-only rows' actual key value instead of null.
			nullLeft[i] = rightOnly.ColumnByName(rightKey)
			continue
		}
		g, err := c.Gather(nullIdx)
		if err != nil {
			return nil, err
		}
		nullLeft[i] = g
	}
	combinedRows := &Table{Columns: composeOutputColumns(&Table{Columns: nullLeft}, rightOnly, leftKey, rightKey, opts.suffix)}
	return concatTables(left, combinedRows)
}

// CrossJoin returns the cartesian product of t and other.
func (t *Table) CrossJoin(other *Table) (*Table, error) {
	ln, rn := t.NumRows(), other.NumRows()
	leftIdx := make([]int32, 0, ln*rn)
	rightIdx := make([]int32, 0, ln*rn)
	for i := 0; i < ln; i++ {
		for j := 0; j < rn; j++ {
			leftIdx = append(leftIdx, int32(i))
			rightIdx = append(rightIdx, int32(j))
		}
	}
	left, err := t.Gather(leftIdx)
	if err != nil {
		return nil, err
	}
	right, err := other.Gather(rightIdx)
	if err != nil {
		return nil, err
	}
	return &Table{Columns: append(left.Columns, right.Columns...)}, nil
}

func (t *Table) joinWith(other *Table, opts JoinOptions) (*Table, error) {
	leftKey, rightKey, err := opts.resolve(t, other)
	if err != nil {
		return nil, err
	}
	leftKeyCol := t.ColumnByName(leftKey)
	rightKeyCol := other.ColumnByName(rightKey)
	if leftKeyCol.DType() != Int64 || rightKeyCol.DType() != Int64 {
		return nil, fmt.Errorf("%w: join key columns must be Int64, got %s and %s", ErrUnsupportedDType, leftKeyCol.DType(), rightKeyCol.DType())
	}

	left := opts.how == LeftJoinType

	var res *joinengine.Result
	var leftOut, rightOut *Table
	if left {
		// LeftJoin must preserve every row of the left (caller's) table, so
		// the left table is the probe side here: internal/joinengine.LeftJoin
		// emits exactly one output row per probe row, BuildIdx==-1 when
		// unmatched.
		buildKeys := rightKeyCol.ToInt64()
		probeKeys := leftKeyCol.ToInt64()
		if parallel.ShouldParallelize(parallel.OpJoin, len(probeKeys)) {
			res = joinengine.ParallelProbeJoin(parallel.Global(), buildKeys, probeKeys, true)
		} else {
			res = joinengine.LeftJoin(buildKeys, probeKeys)
		}
		leftOut, err = t.Gather(res.ProbeIdx)
		if err != nil {
			return nil, err
		}
		rightOut, err = other.Gather(res.BuildIdx)
		if err != nil {
			return nil, err
		}
	} else {
		buildKeys := leftKeyCol.ToInt64()
		probeKeys := rightKeyCol.ToInt64()
		if parallel.ShouldParallelize(parallel.OpJoin, len(probeKeys)) {
			res = joinengine.ParallelProbeJoin(parallel.Global(), buildKeys, probeKeys, false)
		} else {
			res = joinengine.InnerJoin(buildKeys, probeKeys)
		}
		leftOut, err = t.Gather(res.BuildIdx)
		if err != nil {
			return nil, err
		}
		rightOut, err = other.Gather(res.ProbeIdx)
		if err != nil {
			return nil, err
		}
	}

	return &Table{Columns: composeOutputColumns(leftOut, rightOut, leftKey, rightKey, opts.suffix)}, nil
}

// composeOutputColumns lays out a join result's columns: every left column,
// then every right column, renamed with suffix on name collision and
// dropped when it is the same shared On(...) key column on both sides.
// Factored out so OuterJoin's right-only row block gets an identical
// column layout to LeftJoin's matched block, keeping concatTables's
// positional concat valid.
func composeOutputColumns(leftOut, rightOut *Table, leftKey, rightKey, suffix string) []*Column {
	cols := append([]*Column{}, leftOut.Columns...)
	leftNames := make(map[string]bool, len(leftOut.Columns))
	for _, c := range leftOut.Columns {
		leftNames[c.Name()] = true
	}
	for _, c := range rightOut.Columns {
		if leftNames[c.Name()] && c.Name() == rightKey && rightKey == leftKey {
			continue
		}
		if leftNames[c.Name()] {
			renamed := *c
			renamed.name = c.Name() + suffix
			cols = append(cols, &renamed)
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

func concatTables(a, b *Table) (*Table, error) {
	if len(a.Columns) != len(b.Columns) {
		return nil, fmt.Errorf("%w: concat requires matching column counts", ErrLengthMismatch)
	}
	cols := make([]*Column, len(a.Columns))
	for i := range a.Columns {
		c, err := concatColumns(a.Columns[i], b.Columns[i])
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return &Table{Columns: cols}, nil
}

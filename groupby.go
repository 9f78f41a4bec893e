package veloxcore

import (
	"fmt"

	"github.com/brigantine-data/veloxcore/internal/groupby"
)

// GroupBy generalizes the teacher's CGO-backed GroupBy: it holds a
// reference to the source Table and the grouping column name(s). Single-
// column Int64 grouping is currently supported, matching the scope the
// teacher's own CGO entry points covered.
type GroupBy struct {
	table     *Table
	byColumns []string
}

// GroupBy creates a GroupBy object over the named columns.
func (t *Table) GroupBy(columns ...string) *GroupBy {
	if t == nil || len(columns) == 0 {
		return nil
	}
	for _, name := range columns {
		if t.ColumnByName(name) == nil {
			return nil
		}
	}
	return &GroupBy{table: t, byColumns: columns}
}

func (g *GroupBy) keyColumn() (*Column, error) {
	if len(g.byColumns) != 1 {
		return nil, fmt.Errorf("%w: multi-column groupby is not supported", ErrUnsupportedDType)
	}
	keyCol := g.table.ColumnByName(g.byColumns[0])
	if keyCol.DType() != Int64 {
		return nil, fmt.Errorf("%w: groupby key must be Int64, got %s", ErrUnsupportedDType, keyCol.DType())
	}
	return keyCol, nil
}

// Sum computes the sum of column for each group, returning a two-column
// Table of group keys and sums.
func (g *GroupBy) Sum(column string) (*Table, error) {
	keyCol, err := g.keyColumn()
	if err != nil {
		return nil, err
	}
	valCol := g.table.ColumnByName(column)
	if valCol == nil || valCol.DType() != Float64 {
		return nil, fmt.Errorf("%w: groupby sum value column must be Float64", ErrUnsupportedDType)
	}
	if keyCol.Len() == 0 {
		return &Table{}, nil
	}
	keys, sums := groupby.SumInt64Key(keyCol.ToInt64(), valCol.f64)
	return &Table{Columns: []*Column{
		NewColumnI64(g.byColumns[0], keys),
		NewColumnF64(column+"_sum", sums),
	}}, nil
}

// Mean computes the mean of column for each group.
func (g *GroupBy) Mean(column string) (*Table, error) {
	keyCol, err := g.keyColumn()
	if err != nil {
		return nil, err
	}
	valCol := g.table.ColumnByName(column)
	if valCol == nil || valCol.DType() != Float64 {
		return nil, fmt.Errorf("%w: groupby mean value column must be Float64", ErrUnsupportedDType)
	}
	if keyCol.Len() == 0 {
		return &Table{}, nil
	}
	keys, means := groupby.MeanInt64Key(keyCol.ToInt64(), valCol.f64)
	return &Table{Columns: []*Column{
		NewColumnI64(g.byColumns[0], keys),
		NewColumnF64(column+"_mean", means),
	}}, nil
}

// Count computes the row count for each group.
func (g *GroupBy) Count() (*Table, error) {
	keyCol, err := g.keyColumn()
	if err != nil {
		return nil, err
	}
	if keyCol.Len() == 0 {
		return &Table{}, nil
	}
	keys, counts := groupby.CountInt64Key(keyCol.ToInt64())
	i64Counts := make([]int64, len(counts))
	for i, c := range counts {
		i64Counts[i] = int64(c)
	}
	return &Table{Columns: []*Column{
		NewColumnI64(g.byColumns[0], keys),
		NewColumnI64("count", i64Counts),
	}}, nil
}

// Agg computes multiple aggregations in a single pass when they all target
// the same value column (the teacher's "multi-agg" fast path), and falls
// back to computing + merging each aggregation independently otherwise.
// aggs maps column name to aggregation kind: "sum", "mean", "min", "max",
// "count".
func (g *GroupBy) Agg(aggs map[string]string) (*Table, error) {
	keyCol, err := g.keyColumn()
	if err != nil {
		return nil, err
	}
	if len(aggs) == 0 {
		return nil, fmt.Errorf("%w: Agg requires at least one aggregation", ErrUnsupportedDType)
	}

	columns := make([]string, 0, len(aggs))
	for col := range aggs {
		columns = append(columns, col)
	}
	allSameCol := true
	for _, col := range columns[1:] {
		if col != columns[0] {
			allSameCol = false
			break
		}
	}

	if allSameCol {
		firstCol := columns[0]
		if firstCol == "" {
			// count-only aggregation has no value column
			return g.Count()
		}
		valCol := g.table.ColumnByName(firstCol)
		if valCol == nil || valCol.DType() != Float64 {
			return nil, fmt.Errorf("%w: agg value column must be Float64", ErrUnsupportedDType)
		}
		return g.multiAgg(keyCol, valCol, firstCol, aggs)
	}

	var merged *Table
	for col, kind := range aggs {
		var part *Table
		var aggErr error
		switch kind {
		case "sum":
			part, aggErr = g.Sum(col)
		case "mean":
			part, aggErr = g.Mean(col)
		case "count":
			part, aggErr = g.Count()
		case "min", "max":
			valCol := g.table.ColumnByName(col)
			if valCol == nil || valCol.DType() != Float64 {
				return nil, fmt.Errorf("%w: agg value column must be Float64", ErrUnsupportedDType)
			}
			part, aggErr = g.multiAgg(keyCol, valCol, col, map[string]string{col: kind})
		default:
			continue
		}
		if aggErr != nil {
			return nil, aggErr
		}
		if merged == nil {
			merged = part
			continue
		}
		for _, name := range part.ColumnNames() {
			if name != g.byColumns[0] {
				merged = merged.WithColumn(part.ColumnByName(name))
			}
		}
	}
	return merged, nil
}

func (g *GroupBy) multiAgg(keyCol, valCol *Column, colName string, aggs map[string]string) (*Table, error) {
	multiAggs := make([]groupby.Agg, 0, len(aggs))
	for _, kind := range aggs {
		multiAggs = append(multiAggs, groupby.Agg{Name: kind, Kind: kind, Values: valCol.f64})
	}
	keys, results := groupby.MultiAggInt64Key(keyCol.ToInt64(), multiAggs)

	out := &Table{Columns: []*Column{NewColumnI64(g.byColumns[0], keys)}}
	for _, kind := range aggs {
		values, ok := results[kind]
		if !ok {
			continue
		}
		var col *Column
		if kind == "count" {
			i64 := make([]int64, len(values))
			for i, v := range values {
				i64[i] = int64(v)
			}
			col = NewColumnI64("count", i64)
		} else {
			col = NewColumnF64(colName+"_"+kind, values)
		}
		out = out.WithColumn(col)
	}
	return out, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a1s/gridview/internal/model"
	"github.com/a1s/gridview/internal/model1"
)

func TestStatusLine(t *testing.T) {
	uu := map[string]struct {
		visible, total int
		st             model.SelectionStats
		filters        int
		cc             model1.SortCriteria
		e              string
	}{
		"plain": {
			visible: 3, total: 3,
			st: model.SelectionStats{Total: 3, IsNoneSelected: true},
			e:  "[white::b]3[-::-]/3 rows",
		},
		"full": {
			visible: 2, total: 5,
			st:      model.SelectionStats{Total: 2, Selected: 1, Percentage: 50, IsPartiallySelected: true},
			filters: 2,
			cc: model1.SortCriteria{
				{ColumnID: "name", Direction: model1.Asc, Priority: 0},
				{ColumnID: "age", Direction: model1.Desc, Priority: 1},
			},
			e: "[white::b]2[-::-]/5 rows | [orange::b]1[-::-] marked (50%) | [yellow::b]2[-::-] filters | sort name↑,age↓",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, statusLine(u.visible, u.total, u.st, u.filters, u.cc))
		})
	}
}

func TestActiveCount(t *testing.T) {
	ff := []model1.FilterState{
		model1.FilterState{ID: "tags", Type: model1.FilterMultiSelect, Value: model1.MultiValue{"a", "b"}}.Derive(),
		model1.FilterState{ID: "q", Type: model1.FilterSearch, Value: model1.SearchValue("x")}.Derive(),
		model1.FilterState{ID: "status", Type: model1.FilterSingleSelect, Value: model1.SingleValue(model1.AllValue)}.Derive(),
	}

	assert.Equal(t, 3, activeCount(ff))
}

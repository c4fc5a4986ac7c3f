package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableView is a rounded go-pretty table with optional footer totals.
type tableView struct {
	headers []string
	aligns  []columnAlignment
	rows    [][]string
	footer  []string
}

func newTableView(headers []string, aligns []columnAlignment) *tableView {
	return &tableView{headers: headers, aligns: aligns}
}

func (v *tableView) addRow(cells ...string) {
	v.rows = append(v.rows, cells)
}

func (v *tableView) setFooter(cells ...string) {
	v.footer = cells
}

func (v *tableView) render() string {
	columns := len(v.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(v.toRow(v.headers))
	for _, row := range v.rows {
		tw.AppendRow(v.toRow(row))
	}
	if len(v.footer) > 0 {
		tw.AppendFooter(v.toRow(v.footer))
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(v.aligns) && v.aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// toRow pads or truncates cells to the header width.
func (v *tableView) toRow(cells []string) table.Row {
	row := make(table.Row, len(v.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

package render

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/a1s/gridview/internal/model1"
)

// Print writes a tab-aligned table. A mark column is added when marks is not
// nil.
func Print(w io.Writer, h model1.Header, rows []model1.Cells, marks model1.Selection) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fields := make([]string, 0, len(h)+1)
	if marks != nil {
		fields = append(fields, MarkHeader)
	}
	for _, c := range h {
		fields = append(fields, c.Title())
	}
	if _, err := io.WriteString(tw, strings.Join(fields, "\t")+"\n"); err != nil {
		return err
	}

	for _, r := range rows {
		fields = fields[:0]
		if marks != nil {
			mark := " "
			if marks.Has(r.ID) {
				mark = MarkIcon
			}
			fields = append(fields, mark)
		}
		fields = append(fields, r.Fields...)
		if _, err := io.WriteString(tw, strings.Join(fields, "\t")+"\n"); err != nil {
			return err
		}
	}

	return tw.Flush()
}

package render

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"tupleflow/pkg/iterator"
	"tupleflow/pkg/tuple"
)

// TableFormatter renders the output of an operator as a markdown table.
type TableFormatter struct {
	// MaxWidth is the maximum width for a column value
	MaxWidth int
	// TruncateString is the string appended when truncating
	TruncateString string
}

// NewTableFormatter creates a formatter with default settings.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatIterator drains an opened iterator and renders its tuples. The
// iterator is left exhausted; callers that need the data again should
// Rewind it.
func (tf *TableFormatter) FormatIterator(it iterator.DbIterator) (string, error) {
	tuples, err := iterator.Collect(it)
	if err != nil {
		return "", err
	}
	return tf.FormatTuples(it.GetTupleDesc(), tuples), nil
}

// FormatTuples renders a slice of tuples under the given schema.
func (tf *TableFormatter) FormatTuples(desc *tuple.TupleDescription, tuples []*tuple.Tuple) string {
	if len(tuples) == 0 {
		return fmt.Sprintf("_Schema: %s_\n\n_No rows_\n", desc)
	}

	numFields := desc.NumFields()
	alignment := make([]tw.Align, numFields)
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	tableString := &strings.Builder{}
	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	headers := make([]string, numFields)
	for i := 0; i < numFields; i++ {
		name, _ := desc.GetFieldName(i)
		if name == "" {
			name = fmt.Sprintf("col%d", i)
		}
		headers[i] = name
	}
	table.Header(headers)

	for _, t := range tuples {
		row := make([]string, numFields)
		for i := 0; i < numFields; i++ {
			field, err := t.GetField(i)
			if err != nil || field == nil {
				row[i] = "null"
				continue
			}
			row[i] = tf.truncate(field.String())
		}
		table.Append(row)
	}

	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d rows_\n", len(tuples)))
	return tableString.String()
}

func (tf *TableFormatter) truncate(s string) string {
	if tf.MaxWidth <= 0 || len(s) <= tf.MaxWidth {
		return s
	}
	return s[:tf.MaxWidth] + tf.TruncateString
}

// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces with key 'sai.cli'.
func trace() tracing.Trace {
	return tracing.Select("sai.cli")
}

// Formatter writes a display representation of an item. It returns false
// if it is not able to format items of the given type.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter formats strings, lists of strings and tables.
type DefaultFormatter struct{}

// Format formats an item.
func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	switch t := item.(type) {
	case string:
		if _, err := fmt.Fprintf(w, "▶ %s\n", t); err != nil {
			return false, err
		}
		return true, nil
	case []string:
		for _, s := range t {
			if _, err := fmt.Fprintf(w, "▶ %s\n", s); err != nil {
				return false, err
			}
		}
		return true, nil
	case table.Writer:
		if t == nil {
			_, err := w.Write([]byte("▶ (empty table)\n"))
			return err == nil, err
		}
		if _, err := io.WriteString(w, t.Render()+"\n"); err != nil {
			return false, err
		}
		return true, nil
	case error:
		_, err := fmt.Fprintf(w, "▶ error: %v\n", t)
		return err == nil, err
	default:
		_, err := fmt.Fprintf(w, "▶ object of type %T\n", t)
		return err == nil, err
	}
}

// NewTable creates a table writer with a title, in the style used
// throughout the terminal UI.
func NewTable(title string, header ...interface{}) table.Writer {
	tw := table.NewWriter()
	if title != "" {
		tw.SetTitle(title)
	}
	if len(header) > 0 {
		tw.AppendHeader(table.Row(header))
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

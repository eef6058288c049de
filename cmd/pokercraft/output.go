package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// report is anything a command prints. Rows are used for table output and
// the value itself is marshalled for json and yaml.
type report interface {
	Header() []string
	Rows() [][]string
}

type renderer struct {
	out    io.Writer
	format string
}

func newRenderer(out io.Writer, format string) (*renderer, error) {
	format = strings.ToLower(format)
	switch format {
	case "table", "json", "yaml":
	default:
		return nil, errors.Errorf("unsupported output format %q (use table, json or yaml)", format)
	}
	return &renderer{out: out, format: format}, nil
}

func (r *renderer) render(rep report) error {
	switch r.format {
	case "json":
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(rep, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode json")
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(rep)
		if err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		_, err = r.out.Write(data)
		return err
	default:
		data := pterm.TableData{rep.Header()}
		data = append(data, rep.Rows()...)
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Wrap(err, "render table")
		}
		_, err = fmt.Fprintln(r.out, table)
		return err
	}
}

func formatPct(x float64) string {
	return fmt.Sprintf("%.4f%%", 100*x)
}

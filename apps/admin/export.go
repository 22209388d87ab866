package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
)

// exportAll writes every container to path, "-" being stdout.
func (cli *commandLine) exportAll(ctx context.Context, path string) error {
	if err := cli.store.Load(ctx); err != nil {
		return err
	}
	if path == "" {
		path = record.ExportFilename(cli.reports.Now())
	}
	return cli.writeJSON(path, cli.store.Export())
}

func (cli *commandLine) exportStudent(ctx context.Context, id, path string) error {
	if err := cli.store.Load(ctx); err != nil {
		return err
	}
	rec, err := cli.reports.StudentRecord(id)
	if err != nil {
		return err
	}
	if path == "" {
		path = report.StudentRecordFilename(rec.Student, cli.reports.Now())
	}
	return cli.writeJSON(path, rec)
}

func (cli *commandLine) writeJSON(path string, v interface{}) error {
	var w io.Writer = cli.out
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if path != "-" {
		fmt.Fprintf(cli.out, "Exported to %s\n", path)
	}
	return nil
}

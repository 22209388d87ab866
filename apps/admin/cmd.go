package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

type commandLine struct {
	store   *record.Store
	reports *report.Service
	in      io.Reader
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  export [-o FILE] - export all the data (default file: tuition-data-YYYY-MM-DD.json; - for stdout)")
	fmt.Fprintln(cli.out, "  export-student -id ID [-o FILE] - export a student's complete record")
	fmt.Fprintln(cli.out, "  import -f FILE [-yes] - replace all the data with an exported file")
	fmt.Fprintln(cli.out, "  migrate - upgrade legacy homework data")
	fmt.Fprintln(cli.out, "  stats - print the overall and current month statistics")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("o", "", "The output file.")

	exportStudentCmd := flag.NewFlagSet("export-student", flag.ExitOnError)
	exportStudentID := exportStudentCmd.String("id", "", "The student's ID.")
	exportStudentOut := exportStudentCmd.String("o", "", "The output file.")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("f", "", "The exported file to import.")
	importYes := importCmd.Bool("yes", false, "Do not ask for confirmation.")

	switch args[1] {
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.exportAll(ctx, *exportOut)
	case "export-student":
		if err := exportStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportStudentID == "" {
			exportStudentCmd.Usage()
			return errHelp
		}
		return cli.exportStudent(ctx, *exportStudentID, *exportStudentOut)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importAll(ctx, *importFile, *importYes)
	case "migrate":
		return cli.migrate(ctx)
	case "stats":
		return cli.stats(ctx)
	default:
		cli.printUsage()
		return errHelp
	}
}

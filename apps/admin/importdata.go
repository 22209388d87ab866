package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core/record"
)

var errConfirmRequired = errors.New("not a terminal: use -yes to confirm the import")

// importAll replaces all the data with the file's. Nothing changes if the file is malformed.
func (cli *commandLine) importAll(ctx context.Context, path string, yes bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	doc, err := record.ParseDocument(f)
	if err != nil {
		return err
	}

	if !yes {
		confirmed, err := cli.confirm("This will replace all current data. Continue? [y/N]: ")
		if err != nil {
			return err
		}
		if !confirmed {
			return errAborted
		}
	}

	if err = cli.store.Import(ctx, doc); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Imported %d students, %d attendance, %d homework and %d fee entries.\n",
		len(doc.Students), len(doc.Attendance), len(doc.Homework), len(doc.Fees))
	return nil
}

func (cli *commandLine) confirm(prompt string) (bool, error) {
	if !isTerminalFunc(int(os.Stdin.Fd())) {
		return false, errConfirmRequired
	}
	fmt.Fprint(cli.out, prompt)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && answer == "" {
		return false, errors.Wrap(err, "reading answer")
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

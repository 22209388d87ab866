package main

import (
	"context"
	"encoding/json"

	"github.com/trezcool/tuition/core/report"
)

func (cli *commandLine) stats(ctx context.Context) error {
	if err := cli.store.Load(ctx); err != nil {
		return err
	}
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Overall report.OverallStats `json:"overall"`
		Monthly report.MonthlyStats `json:"monthly"`
	}{
		Overall: cli.reports.Overall(),
		Monthly: cli.reports.Monthly(),
	})
}

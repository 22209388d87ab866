package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
	logsvc "github.com/trezcool/tuition/services/logger"
	"github.com/trezcool/tuition/storage"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up storage
	gw, err := storage.Open(context.Background(), conf)
	errAndDie(err)

	// start CLI; containers are loaded by the commands that need them
	store := record.NewStore(gw, logsvc.NewLogger(logger, conf))
	cli := commandLine{
		store:   store,
		reports: report.NewService(store, conf),
		in:      os.Stdin,
		out:     os.Stdout,
	}
	err = cli.run(os.Args)
	if cErr := gw.Close(); cErr != nil {
		logger.Printf("closing storage: %s", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/tuition/apps/api/echo"
	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
	logsvc "github.com/trezcool/tuition/services/logger"
	"github.com/trezcool/tuition/storage"
)

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewLogger(stdLogger, conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewLogger(stdLogger, conf)
}

func newGateway(conf *core.Config, loggerParam StoreLoggerParam) storage.Gateway {
	gw, err := storage.Open(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("opening %s storage: %v", conf.Storage.Driver, err), err)
	}
	return gw
}

// newStore loads the containers, migrating legacy homework data if needed.
func newStore(gw storage.Gateway, loggerParam StoreLoggerParam) *record.Store {
	store, err := record.Open(context.Background(), gw, loggerParam.Logger)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("loading records: %v", err), err)
	}
	return store
}

func newValidator() *validator.Validate {
	return validator.New()
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	store *record.Store,
	reports *report.Service,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Store:      store,
		Reports:    reports,
		Validate:   validate,
		Translator: translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newGateway))
	must(c.Provide(newStore))
	must(c.Provide(report.NewService))
	must(c.Provide(newValidator))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}

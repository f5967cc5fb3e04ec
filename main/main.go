package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/oimyounis/mqstub"
)

func main() {
	configPath := flag.String("config", mqstub.DefaultConfigPath, "path to the YAML config file")
	host := flag.String("host", mqstub.DefaultHost, "address to bind")
	port := flag.Int("port", mqstub.DefaultPort, "TCP port to bind")
	flag.Parse()

	config, err := mqstub.LoadConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	// flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			config.Listen.Host = *host
		case "port":
			config.Listen.Port = *port
		}
	})
	if err = config.Validate(); err != nil {
		log.Fatalln(err)
	}

	logger, err := mqstub.NewLogger(config.Logging)
	if err != nil {
		log.Fatalln(err)
	}
	defer logger.Sync() //nolint:errcheck

	broker := mqstub.NewBroker(config, logger)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info("caught signal", zap.Stringer("signal", sig))
		_ = broker.Close()
	}()

	if err = broker.Listen(); err != nil && !errors.Is(err, mqstub.ErrServerClosed) {
		logger.Fatal("broker stopped", zap.Error(err))
	}
}

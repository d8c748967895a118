package main

import (
	"context"
	"flag"

	"vsync/cmd/sync/wire"
	"vsync/pkg/config"
	"vsync/pkg/log"
)

func main() {
	var envConf = flag.String("conf", "config/local.yml", "config path, eg: -conf ./config/local.yml")
	var snapshot = flag.String("snapshot", "", "snapshot path, overrides sync.snapshot_path")
	flag.Parse()
	conf := config.NewConfig(*envConf)
	if *snapshot != "" {
		conf.Set("sync.snapshot_path", *snapshot)
	}

	logger := log.NewLog(conf)

	app, cleanup, err := wire.NewWire(conf, logger)
	defer cleanup()
	if err != nil {
		panic(err)
	}
	if err = app.Run(context.Background()); err != nil {
		panic(err)
	}
}

package main

import (
	"fmt"

	"github.com/Speshl/gorrc_tank/internal/app"
	"github.com/Speshl/gorrc_tank/internal/config"
	socketio "github.com/googollee/go-socket.io"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.GetConfig()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("invalid log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	socketURI := fmt.Sprintf("http://%s", cfg.ServerCfg.Server)
	client, err := socketio.NewClient(socketURI, nil)
	if err != nil {
		log.Fatalf("error creating client - %s", err.Error())
	}

	app, err := app.NewApp(cfg, client)
	if err != nil {
		log.Fatalf("error creating app - %s", err.Error())
	}

	err = app.RegisterHandlers()
	if err != nil {
		log.Fatalf("error registering handlers - %s", err.Error())
	}

	err = app.Start()
	if err != nil {
		log.Printf("client shutdown with error: %s", err.Error())
	} else {
		log.Println("client shutdown successfully")
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Speshl/gorrc_tank/internal/command/nop"
	pca9685 "github.com/Speshl/gorrc_tank/internal/command/pca9685"
	pipwm "github.com/Speshl/gorrc_tank/internal/command/pi_pwm"
	"github.com/Speshl/gorrc_tank/internal/config"
	"github.com/Speshl/gorrc_tank/internal/input"
	"github.com/Speshl/gorrc_tank/internal/models"
	"github.com/Speshl/gorrc_tank/internal/vehicle"
	"github.com/Speshl/gorrc_tank/internal/vehicle/tank"
	socketio "github.com/googollee/go-socket.io"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type App struct {
	ctx       context.Context
	ctxCancel context.CancelFunc

	car vehicle.Vehicle

	carInfo   models.Car
	trackInfo models.Track

	client *socketio.Client
	cfg    config.Config

	connLock   sync.Mutex
	connection *Connection

	snapshots  *input.Cell
	hudChannel chan models.Hud
}

func NewApp(cfg config.Config, client *socketio.Client) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	hudChannel := make(chan models.Hud, 100)
	snapshots := input.NewCell()

	sink, err := NewDutySink(cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	return &App{
		cfg:        cfg,
		client:     client,
		ctx:        ctx,
		ctxCancel:  cancel,
		snapshots:  snapshots,
		hudChannel: hudChannel,
		car:        tank.NewTank(cfg.DriveCfg, snapshots, sink, hudChannel),
	}, nil
}

// NewDutySink picks the motor driver named by the command config.
func NewDutySink(cfg config.Config) (vehicle.DutySink, error) {
	cycleLength := tank.CycleLength(cfg.DriveCfg)
	switch cfg.CommandCfg.CommandDriver {
	case "pca9685":
		return pca9685.NewCommand(cfg.CommandCfg, cycleLength), nil
	case "pipwm":
		return pipwm.NewCommand(cfg.CommandCfg, cycleLength), nil
	case "none", "nop":
		return nop.NewCommand(tank.MotorCount), nil
	default:
		return nil, fmt.Errorf("unsupported command driver: %s", cfg.CommandCfg.CommandDriver)
	}
}

func (a *App) RegisterHandlers() error {
	log.Println("registering handlers")
	a.client.OnEvent("reply", func(s socketio.Conn, msg string) {
		log.Println("Receive Message /reply: ", "reply", msg)
	})

	a.client.OnEvent("offer", a.onOffer)

	a.client.OnEvent("candidate", a.onICECandidate)

	a.client.OnEvent("register_success", a.onRegisterSuccess)

	a.client.OnEvent("snapshot", a.onSnapshot)

	log.Println("attemping to connect to server...")
	err := a.client.Connect() //Client must have atleast 1 event handler to work
	if err != nil {
		return fmt.Errorf("error connecting to server - %w", err)
	}
	log.Println("connected to server")
	return nil
}

func (a *App) Start() error {
	group, groupCtx := errgroup.WithContext(a.ctx)
	log.Println("starting...")

	defer func() {
		log.Println("stopping...")
		a.disconnectUser()
		a.client.Close()
	}()

	//kill listener
	group.Go(func() error {
		signalChannel := make(chan os.Signal, 1)
		signal.Notify(signalChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-signalChannel:
			log.Printf("received signal: %s\n", sig)
			a.ctxCancel()
			return fmt.Errorf("received signal: %s", sig)
		case <-groupCtx.Done():
			log.Println("closing signal goroutine")
			return groupCtx.Err()
		}
	})

	//Start car
	group.Go(func() error {
		err := a.car.Init()
		if err != nil {
			return fmt.Errorf("failed initializing tank: %w", err)
		}
		return a.car.Start(groupCtx)
	})

	//Send connect and send healthchecks
	group.Go(func() error {
		encodedMsg, err := encode(models.ConnectReq{
			Key:       a.cfg.ServerCfg.Key,
			Password:  a.cfg.ServerCfg.Password,
			SeatCount: a.cfg.ServerCfg.SeatCount,
		})
		if err != nil {
			return fmt.Errorf("failed encoding connect request: %w", err)
		}
		a.client.Emit("car_connect", encodedMsg)

		healthTicker := time.NewTicker(time.Duration(a.cfg.ServerCfg.HealthInterval) * time.Millisecond)
		defer healthTicker.Stop()

		for {
			select {
			case <-groupCtx.Done():
				log.Println("health checker stopped")
				return groupCtx.Err()
			case <-healthTicker.C:
				log.Debugf("healthcheck: healthy, %d snapshots received", a.snapshots.Stores())
				a.client.Emit("car_healthy", "")
			}
		}
	})

	err := group.Wait()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Println("context was cancelled")
			return nil
		} else {
			return fmt.Errorf("client stopping due to error - %w", err)
		}
	}

	log.Println("shutting down")
	return nil
}

func (a *App) disconnectUser() {
	a.replaceUser(nil)
}

// replaceUser swaps in conn and disconnects whichever connection it displaced.
func (a *App) replaceUser(conn *Connection) {
	a.connLock.Lock()
	old := a.connection
	a.connection = conn
	a.connLock.Unlock()

	if old != nil {
		old.Disconnect()
	}
}

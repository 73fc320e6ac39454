package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gymstack/gymstack/internal/config"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/server"
	"github.com/gymstack/gymstack/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}
	displayAppname(cfg.GetAppName())

	db, err := storage.Open(cfg.GetDataFolder())
	if err != nil {
		return fmt.Errorf("storage.Open: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Err(err).Msg("failed to close data store")
		}
	}()

	directory, err := principals.NewDirectory(
		storage.NewPrincipalStore(db, principals.RoleGymOwner),
		storage.NewPrincipalStore(db, principals.RoleTrainer),
		storage.NewPrincipalStore(db, principals.RoleMember),
	)
	if err != nil {
		return fmt.Errorf("principals.NewDirectory: %w", err)
	}

	srv, err := server.New(cfg, server.Repos{
		Directory:    directory,
		Equipment:    storage.NewEquipmentStore(db),
		Appointments: storage.NewAppointmentStore(db),
	})
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Err(err).Msg("failed to close server")
		}
	}()

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(srv *http.Server) {
	log.Info().Msgf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"csms/internal/config"
	"csms/internal/db"
	"csms/internal/httpapi"
	"csms/internal/ocpp"
	"csms/internal/repo"
	"csms/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := db.ConnectWithRetry(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	if err := d.Init(ctx); err != nil {
		log.Fatal(err)
	}

	sessions := repo.NewSessionsRepo(d.Pool)
	lifecycle := ocpp.NewLifecycle(sessions)
	dispatcher := ocpp.NewDispatcher(lifecycle, cfg.HeartbeatInterval)
	supervisor := ws.NewSupervisor(dispatcher)
	srv := httpapi.NewServer(sessions, supervisor)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Println("CSMS listening on", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = httpServer.Shutdown(ctx2)
	log.Println("CSMS shutdown complete")
}

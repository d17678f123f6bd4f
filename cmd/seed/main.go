package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"csms/internal/config"
	"csms/internal/db"
	"csms/internal/ocpp"
	"csms/internal/repo"
)

func main() {
	idTag := flag.String("idtag", "TAG-DEV", "idTag for the seeded session")
	meterStart := flag.Float64("meter_start", 0, "meter reading at session start")
	finish := flag.Bool("finish", false, "also finish the session")
	meterStop := flag.Float64("meter_stop", 0, "meter reading at session stop (with --finish)")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	if err := d.Init(ctx); err != nil {
		log.Fatal(err)
	}

	lifecycle := ocpp.NewLifecycle(repo.NewSessionsRepo(d.Pool))

	id, err := lifecycle.OpenSession(ctx, *idTag, time.Now().UTC(), *meterStart)
	if err != nil {
		log.Fatal(err)
	}
	if *finish {
		if err := lifecycle.CloseSession(ctx, id, time.Now().UTC(), *meterStop); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("Seeded session:", id, "finished=", *finish)
}

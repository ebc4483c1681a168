package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tidybook/internal/seed"
	"tidybook/pkg/config"
)

const JobName = "seed"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting seed job")
	defer cfg.GracefulShutdown()
	if err := seed.Run(ctx, cfg); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Println("Seeding completed successfully.")
}

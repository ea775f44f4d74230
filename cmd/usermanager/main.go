package main

import (
	"context"
	"log"
	"os"

	"user-profile-api/internal"
)

func main() {
	ctx := context.Background()

	app, err := internal.NewApp(ctx)
	if err != nil {
		log.Fatalf("init app failed: %v", err)
	}

	app.InitControllers()

	err = app.Run(ctx)
	app.Close()
	if err != nil {
		app.Logger().Sugar().Errorf("userprofileapi stopped with error: %v", err)
		os.Exit(1)
	}
}

package main

//go:generate swag init --parseDependency --dir ../../internal/auth/http,../../pkg/authsdk --generalInfo router.go --output ../../api/auth --outputTypes go

import (
	"context"
	"log"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

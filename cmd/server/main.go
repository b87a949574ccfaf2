package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/resumekeeper/internal/server"
	"github.com/dmitrijs2005/resumekeeper/internal/server/config"
	"github.com/gin-gonic/gin"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}

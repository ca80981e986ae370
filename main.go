package main

import (
	"plume/chat"
	"plume/config"
	"plume/models"
	"plume/routes"
	"plume/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Follow{})

	// Warm the redis connection used for sessions and the read cache.
	utils.GetRedis()

	hub := chat.NewHub()
	go hub.Run()

	r := routes.SetupRouter(db, hub)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

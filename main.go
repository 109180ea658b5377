package main

import (
	"campus-recruit/core/logger"
	"campus-recruit/core/server"
)

// @title Campus Recruit API
// @version 1.0
// @description Interview slot allocation and attendance backend for the campus recruitment platform

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}

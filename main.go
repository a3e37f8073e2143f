package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/isk-lottery/cmd/app"
)

// @title        ISK lottery operator API
// @version      1.0
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}

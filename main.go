package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/lucky-ticket-api/cmd/app"
)

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
// @description Signed session token issued by /auth/login
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}

package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Set properties of the predefined Logger, including the log entry
	// prefix and a flag to disable printing the time and source location.
	log.SetPrefix("lg/weight-coach-go-api: ")
	log.SetFlags(0)

	// .env is optional — in deployed environments DB_URL comes from the
	// platform, not a file.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	fmt.Println("Starting gin app...")

	h := Handler{db: getDBPool()}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	router.Run("localhost:3000")
}

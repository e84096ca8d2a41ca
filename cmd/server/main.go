package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/youruser/collageapp/internal/api"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/ctxlog"
	imagepkg "github.com/youruser/collageapp/internal/image"
)

func main() {
	cfg := config.Default()
	if path := os.Getenv("COLLAGE_CONFIG"); path != "" {
		loaded, err := config.LoadFile(path, cfg)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if v, err := strconv.Atoi(os.Getenv("WORKERS")); err == nil {
		cfg.Workers = v
	}
	logger := ctxlog.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
	for _, w := range cfg.Normalize() {
		logger.Warn(w)
	}

	source := imagepkg.NewHTTPFetcher(cfg.Timeout, cfg.MaxBodyBytes)
	r := gin.Default()
	api.RegisterRoutes(r, api.NewHandlers(source, cfg, logger))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

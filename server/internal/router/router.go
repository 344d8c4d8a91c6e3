package router

import (
	"github.com/gin-gonic/gin"
	"github.com/openquant/nsechain/server/internal/handler"
)

type Config struct {
	OptionChainHandler *handler.OptionChainHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerOptionRoutes(api, cfg.OptionChainHandler)

	return router
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/openquant/nsechain/server/internal/handler"
)

func registerOptionRoutes(router *gin.RouterGroup, optionHandler *handler.OptionChainHandler) {
	options := router.Group("/options")
	{
		options.GET("/latest", optionHandler.GetLatest)
		options.GET("/count", optionHandler.GetCount)
	}

	market := router.Group("/market")
	{
		market.GET("/status", optionHandler.GetMarketStatus)
	}
}

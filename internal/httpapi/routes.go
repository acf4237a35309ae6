package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/mediascribe/internal/models"
	"github.com/nguyentantai21042004/mediascribe/pkg/response"
)

func (s *Server) routes() {
	r := s.engine

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	if s.jwt != nil {
		api.Use(requireToken(s.jwt))
	}

	api.GET("/languages", func(c *gin.Context) {
		response.OK(c, models.Languages)
	})

	analyze := []gin.HandlerFunc{}
	if s.limiter != nil {
		analyze = append(analyze, s.limiter.handler(s.logger))
	}
	api.POST("/analyze", append(analyze, s.analyze)...)

	records := api.Group("/records")
	records.GET("", s.listRecords)
	records.GET("/:id", s.getRecord)
	records.DELETE("/:id", s.deleteRecord)
	records.PATCH("/:id/folder", s.moveRecord)
	records.PATCH("/:id/segments/:index", s.editSegment)
	records.GET("/:id/export/:format", s.exportRecord)

	folders := api.Group("/folders")
	folders.GET("", s.listFolders)
	folders.POST("", s.createFolder)
	folders.DELETE("/:id", s.deleteFolder)
}

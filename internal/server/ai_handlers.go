package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/socialhub/internal/content"
	"github.com/agenthands/socialhub/internal/model"
)

func (s *Server) GenerateIdeas(c *gin.Context) {
	var req content.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	ideas, err := s.svc.Ideas.Generate(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (s *Server) AnalyzeContent(c *gin.Context) {
	var req content.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	analyses, err := s.svc.Ideas.Analyze(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

func (s *Server) GenerateImage(c *gin.Context) {
	var req model.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	image, err := s.svc.Images.Generate(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

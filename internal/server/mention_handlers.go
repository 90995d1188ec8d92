package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/socialhub/internal/mentions"
)

type analyzeMentionsRequest struct {
	Mentions []mentions.Mention `json:"mentions"`
}

func (s *Server) GenerateMentions(c *gin.Context) {
	var req mentions.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	records, err := s.svc.Mentions.Generate(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentions": records})
}

func (s *Server) AnalyzeMentions(c *gin.Context) {
	var req analyzeMentionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badBody(c, err)
		return
	}

	analysis, err := s.svc.Mentions.Analyze(c.Request.Context(), req.Mentions)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

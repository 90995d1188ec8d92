package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/socialhub/internal/apperr"
	"github.com/agenthands/socialhub/internal/feeds"
)

// intQuery parses an optional positive integer query parameter; absent is 0.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apperr.Validation(name + " must be a positive integer")
	}
	return n, nil
}

func (s *Server) Trends(c *gin.Context) {
	hours, err := intQuery(c, "hours")
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.svc.Trends.Fetch(c.Request.Context(), c.Query("geo"), hours)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) News(c *gin.Context) {
	pageSize, err := intQuery(c, "pageSize")
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.svc.News.Fetch(c.Request.Context(), feeds.NewsQuery{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Country:  c.Query("country"),
		Language: c.Query("language"),
		PageSize: pageSize,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) YouTube(c *gin.Context) {
	maxResults, err := intQuery(c, "maxResults")
	if err != nil {
		s.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	var res *feeds.VideoResult
	switch mode := c.DefaultQuery("mode", "trending"); mode {
	case "trending":
		res, err = s.svc.Videos.Trending(ctx, c.Query("region"), c.Query("categoryId"), maxResults)
	case "search":
		res, err = s.svc.Videos.Search(ctx, c.Query("q"), c.Query("region"), maxResults)
	default:
		err = apperr.Validation("mode must be trending or search")
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

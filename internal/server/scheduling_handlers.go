package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/socialhub/internal/scheduling"
)

// relay writes an upstream answer with its status and body untouched.
func relay(c *gin.Context, resp *scheduling.Response) {
	if resp.Status == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
}

func (s *Server) ListProfiles(c *gin.Context) {
	resp, err := s.svc.Scheduling.ListProfiles(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

func (s *Server) CreateProfile(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badBody(c, err)
		return
	}

	resp, err := s.svc.Scheduling.CreateProfile(c.Request.Context(), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

func (s *Server) ListAccounts(c *gin.Context) {
	resp, err := s.svc.Scheduling.ListAccounts(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

func (s *Server) DeleteAccount(c *gin.Context) {
	resp, err := s.svc.Scheduling.DeleteAccount(c.Request.Context(), c.Query("accountId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

func (s *Server) Connect(c *gin.Context) {
	oauthURL, err := s.svc.Scheduling.ConnectURL(c.Request.Context(),
		c.Query("platform"), c.Query("profileId"), c.Query("redirectUrl"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"oauthUrl": oauthURL})
}

func (s *Server) ListPosts(c *gin.Context) {
	resp, err := s.svc.Scheduling.ListPosts(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

func (s *Server) CreatePost(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badBody(c, err)
		return
	}

	resp, err := s.svc.Scheduling.CreatePost(c.Request.Context(), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

// UpdatePost takes the post id from the query string or the body's postId.
// postId is not relayed.
func (s *Server) UpdatePost(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badBody(c, err)
		return
	}
	postID := c.Query("postId")
	if id, ok := body["postId"].(string); ok {
		if postID == "" {
			postID = id
		}
		delete(body, "postId")
	}

	resp, err := s.svc.Scheduling.UpdatePost(c.Request.Context(), postID, body)
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

func (s *Server) DeletePost(c *gin.Context) {
	resp, err := s.svc.Scheduling.DeletePost(c.Request.Context(), c.Query("postId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	relay(c, resp)
}

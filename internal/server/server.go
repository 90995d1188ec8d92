package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/cache"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/content"
	"github.com/agenthands/socialhub/internal/feeds"
	"github.com/agenthands/socialhub/internal/llm"
	"github.com/agenthands/socialhub/internal/mentions"
	"github.com/agenthands/socialhub/internal/scheduling"
)

// Services are the handler families behind the router.
type Services struct {
	Ideas      *content.IdeaService
	Images     *content.ImageService
	Trends     *feeds.TrendsService
	News       *feeds.NewsService
	Videos     *feeds.VideoService
	Scheduling *scheduling.Client
	Mentions   *mentions.Service
}

// newUpstreamClient carries no timeout; request contexts bound each call.
func newUpstreamClient() *http.Client {
	return &http.Client{}
}

// NewServices builds every service from configuration. Providers without
// credentials are still wired; their calls fail or fall back per feature.
func NewServices(ctx context.Context, cfg *config.Config, c cache.Cache, log *zap.Logger) (Services, error) {
	httpClient := newUpstreamClient()

	textClient, err := llm.NewClient(ctx, cfg.LLM, log.Named("llm"))
	if err != nil {
		return Services{}, err
	}
	if textClient == nil {
		log.Warn("no AI credential configured, idea and mention generation will serve demo data")
	}
	imageGen, err := llm.NewImageGenerator(ctx, cfg.Image, log.Named("image"))
	if err != nil {
		return Services{}, err
	}
	videos, err := feeds.NewVideoService(ctx, cfg.YouTube, c, log.Named("youtube"))
	if err != nil {
		return Services{}, err
	}

	return Services{
		Ideas:      content.NewIdeaService(textClient, log.Named("ideas")),
		Images:     content.NewImageService(imageGen, log.Named("image")),
		Trends:     feeds.NewTrendsService(cfg.Trends, httpClient, c, log.Named("trends")),
		News:       feeds.NewNewsService(cfg.News, httpClient, c, log.Named("news")),
		Videos:     videos,
		Scheduling: scheduling.NewClient(cfg.Scheduling, httpClient, log.Named("scheduling")),
		Mentions:   mentions.NewService(textClient, log.Named("mentions")),
	}, nil
}

type Server struct {
	cfg    *config.Config
	svc    Services
	redis  *redis.Client
	logger *zap.Logger
}

// NewServer wires services into HTTP handlers. redis may be nil, which
// disables rate limiting.
func NewServer(cfg *config.Config, svc Services, rdb *redis.Client, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, svc: svc, redis: rdb, logger: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(Recovery(s.logger), RequestID(), AccessLog(s.logger), Metrics())
	r.Use(cors.New(s.corsConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	ai := api.Group("/ai", s.rateLimit()...)
	{
		ai.POST("/analyze", s.AnalyzeContent)
		ai.POST("/ideas", s.GenerateIdeas)
		ai.POST("/image", s.GenerateImage)
	}

	sched := api.Group("/scheduling")
	{
		sched.GET("/accounts", s.ListAccounts)
		sched.DELETE("/accounts", s.DeleteAccount)
		sched.GET("/connect", s.Connect)
		sched.GET("/posts", s.ListPosts)
		sched.POST("/posts", s.CreatePost)
		sched.PUT("/posts", s.UpdatePost)
		sched.DELETE("/posts", s.DeletePost)
		sched.GET("/profiles", s.ListProfiles)
		sched.POST("/profiles", s.CreateProfile)
	}

	ment := api.Group("/mentions", s.rateLimit()...)
	{
		ment.POST("/analyze", s.AnalyzeMentions)
		ment.POST("/generate", s.GenerateMentions)
	}

	api.GET("/news", s.News)
	api.GET("/trends", s.Trends)
	api.GET("/youtube", s.YouTube)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	cc.AllowOrigins = s.cfg.Server.CORSOrigins
	return cc
}

func (s *Server) rateLimit() []gin.HandlerFunc {
	if s.redis == nil {
		return nil
	}
	return []gin.HandlerFunc{
		RateLimit(s.redis, s.cfg.RateLimit.Requests, s.cfg.RateLimit.WindowDuration(), s.logger),
	}
}

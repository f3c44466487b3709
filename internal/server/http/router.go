package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"centre/internal/game"
)

type Config struct {
	WebDir       string        // 桌面版静态文件
	MobileDir    string        // 手机版静态文件，空则与 WebDir 相同
	AllowOrigins string        // CORS，空为 "*"
	AITimeout    time.Duration // 单步搜索上限，0 不限
	Parallel     bool          // 根节点并行搜索
}

// Server 一个 fiber 应用：/api/* JSON 接口、/ws/game/:game_id 推送、静态前端
type Server struct {
	app   *fiber.App
	games *game.Manager
	hub   *hub
	cfg   Config

	// 后台 AI 搜索用，Shutdown 时取消
	baseCtx context.Context
	cancel  context.CancelFunc
}

func New(cfg Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "first-to-the-centre",
			DisableStartupMessage: true,
		}),
		games:   game.NewManager(),
		hub:     newHub(),
		cfg:     cfg,
		baseCtx: ctx,
		cancel:  cancel,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	origins := s.cfg.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	api := s.app.Group("/api")
	api.Post("/new_game", s.handleNewGame)
	api.Post("/state", s.handleState)
	api.Post("/play", s.handlePlay)
	api.Post("/ai_move", s.handleAiMove)
	api.Get("/legal/:game_id", s.handleLegal)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	s.app.Get("/ws/game/:game_id", websocket.New(s.handleSocket, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	RegisterStaticRoutes(s.app, s.cfg.WebDir, s.cfg.MobileDir)
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Games() *game.Manager { return s.games }

func (s *Server) Listen(addr string) error {
	log.Printf("[http] listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	s.cancel()
	return s.app.Shutdown()
}

// 带上限的搜索上下文
func (s *Server) searchContext(limit time.Duration) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		limit = s.cfg.AITimeout
	}
	if limit <= 0 {
		return context.WithCancel(s.baseCtx)
	}
	return context.WithTimeout(s.baseCtx, limit)
}

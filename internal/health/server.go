// Package health answers the hosting platform's keep-alive checks. It
// shares no state with the bot.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Server struct {
	engine *gin.Engine
	addr   string
}

func New(port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery())

	e.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Discord Bot is running!")
	})
	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "bot": "running"})
	})

	return &Server{engine: e, addr: ":" + port}
}

// Run blocks serving the health routes.
func (s *Server) Run() error {
	return s.engine.Run(s.addr)
}

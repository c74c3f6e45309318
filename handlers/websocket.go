package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"assessment-prediction-api/logger"
	"assessment-prediction-api/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveReloads serves GET /ws/reloads: it upgrades to a websocket and forwards
// every reload summary published on the cache channel, so clients learn about
// fresh models without polling.
func LiveReloads(cache *services.CacheService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cache.Available() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live reload updates require the cache to be enabled"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// Read pump: detect client disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		pubsub := cache.Subscribe(ctx, services.ReloadChannel)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				err := conn.WriteJSON(gin.H{
					"type": "reload",
					"data": msg.Payload,
				})
				if err != nil {
					logger.Warn("websocket write failed", zap.Error(err))
					return
				}
			}
		}
	}
}

package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/configs"
)

// CORSMiddleware CORS中间件. 身份头需要在 AllowHeaders 中放行.
func CORSMiddleware(auth configs.AuthConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	config.AllowHeaders = append(config.AllowHeaders, auth.Headers...)

	return cors.New(config)
}

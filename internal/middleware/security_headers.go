package middleware

import "github.com/gin-gonic/gin"

// ChartScriptSource is where the chart page loads plotly from.
const ChartScriptSource = "https://cdn.plot.ly"

func SecurityHeadersMiddleware() gin.HandlerFunc {
	csp := "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' " + ChartScriptSource + "; " +
		"style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; " +
		"frame-ancestors 'none'"

	return func(c *gin.Context) {
		headers := c.Writer.Header()

		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "same-origin")
		// Pages render inline chart and polling scripts.
		headers.Set("Content-Security-Policy", csp)

		c.Next()
	}
}

package handler

import (
	"net/http"
	"strings"

	"github.com/Augusto140/Englife-server/internal/logger"
	"github.com/Augusto140/Englife-server/internal/middleware"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	flashCookie = "flash"
	flashMaxAge = 60
	// Escaped, 300 runes stay well below the 4 KB browser cookie limit.
	maxFlashRunes = 300

	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a one-shot message shown on the page after a redirect.
type Notice struct {
	Kind    string
	Message string
}

// SetFlash stores the notice for the next page view. gin escapes the value.
// Long messages, such as raw driver errors, are cut to maxFlashRunes.
func SetFlash(c *gin.Context, kind, message string) {
	c.SetCookie(flashCookie, kind+"|"+truncateRunes(message, maxFlashRunes), flashMaxAge, "/", "", false, true)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(c *gin.Context) *Notice {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	kind, message, found := strings.Cut(raw, "|")
	if !found {
		kind, message = NoticeError, raw
	}
	if kind != NoticeSuccess {
		kind = NoticeError
	}
	return &Notice{Kind: kind, Message: message}
}

func render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page
	data["Title"] = title
	data["Notice"] = PopFlash(c)
	c.HTML(status, templateName(page), data)
}

func templateName(page string) string {
	return page + ".html"
}

func redirectWithNotice(c *gin.Context, location, kind, message string) {
	SetFlash(c, kind, message)
	c.Redirect(http.StatusFound, location)
}

// renderLoadError answers a failed read page with the error template.
func renderLoadError(c *gin.Context, what string, err error) {
	message := MsgConnectionOr("Erro ao carregar "+what+": ", err)
	logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to load page",
		zap.String("page", what),
		zap.String("code", appErrors.CodeOf(err)),
		zap.Error(err),
	)
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, "error", "Erro", gin.H{"Message": message})
}

// MsgConnectionOr returns the fixed connection message for an unavailable
// store and prefix followed by the error otherwise.
func MsgConnectionOr(prefix string, err error) string {
	if appErrors.IsUnavailable(err) {
		return appErrors.MsgConnectionUnavailable
	}
	return prefix + appErrors.MessageOf(err)
}

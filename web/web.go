// Package web holds the HTML templates rendered by the gin handlers.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page and partial with the helper functions below.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"datetime":  formatDateTime,
		"deref":     deref,
		"number":    formatNumber,
		"status":    onlineLabel,
		"timeofday": formatTimeOfDay,
		"plotly":    plotlyFigure,
	}
}

const dateTimeLayout = "02/01/2006 15:04:05"

// formatDateTime accepts time.Time and *time.Time; nil and zero render "-".
func formatDateTime(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format(dateTimeLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Local().Format(dateTimeLayout)
	default:
		return "-"
	}
}

// deref renders optional columns, "-" when absent.
func deref(v interface{}) string {
	switch p := v.(type) {
	case *string:
		if p == nil || *p == "" {
			return "-"
		}
		return *p
	case string:
		if p == "" {
			return "-"
		}
		return p
	case *float64:
		if p == nil {
			return "-"
		}
		return formatNumber(*p)
	case *int:
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	case *bool:
		if p == nil {
			return "-"
		}
		if *p {
			return "Sim"
		}
		return "Não"
	default:
		return "-"
	}
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatTimeOfDay(d *time.Duration) string {
	if d == nil {
		return "-"
	}
	total := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func onlineLabel(online bool) string {
	if online {
		return "Online"
	}
	return "Offline"
}

// plotlyFigure marks a figure document produced by encoding/json as safe to
// embed in a script block.
func plotlyFigure(doc string) template.JS {
	return template.JS(doc)
}

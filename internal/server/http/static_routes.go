package httpserver

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const viewCookieName = "centre_view"

// RegisterStaticRoutes mounts:
// - /web/*        -> desktop assets
// - /web_mobile/* -> mobile assets
// - /             -> redirect by ?view=, cookie, then User-Agent
func RegisterStaticRoutes(app *fiber.App, desktopDir string, mobileDir string) {
	if app == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	app.Static("/web", desktopDir)
	app.Static("/web_mobile", mobileDir)

	app.Get("/", func(c *fiber.Ctx) error {
		target := "/web/"
		if pickView(c) == "mobile" {
			target = "/web_mobile/"
		}
		c.Set(fiber.HeaderVary, "User-Agent, Cookie")
		return c.Redirect(target, fiber.StatusFound)
	})
}

func pickView(c *fiber.Ctx) string {
	if v, ok := normalizeView(c.Query("view")); ok {
		rememberView(c, v)
		return v
	}
	if v, ok := normalizeView(c.Cookies(viewCookieName)); ok {
		return v
	}
	if isMobileUA(c.Get(fiber.HeaderUserAgent)) {
		return "mobile"
	}
	return "web"
}

func rememberView(c *fiber.Ctx, view string) {
	c.Cookie(&fiber.Cookie{
		Name:     viewCookieName,
		Value:    view,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func normalizeView(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "web", "desktop", "pc":
		return "web", true
	case "mobile", "m", "phone", "web_mobile":
		return "mobile", true
	default:
		return "", false
	}
}

var mobileNeedles = []string{
	"android",
	"iphone",
	"ipad",
	"ipod",
	"mobile",
	"windows phone",
	"harmony",
}

func isMobileUA(ua string) bool {
	s := strings.ToLower(ua)
	if s == "" {
		return false
	}
	for _, n := range mobileNeedles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

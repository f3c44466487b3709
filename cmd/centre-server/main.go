package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	httpserver "centre/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 无图形界面的环境会失败，忽略
}

const (
	defaultAddr    = "127.0.0.1:2888"
	defaultOrigins = "http://127.0.0.1:2888,http://localhost:2888"
)

// 本机打开用的地址；":2888" 这种只有端口的补成 127.0.0.1
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func main() {
	addr := flag.String("addr", defaultAddr, "listen address; use :2888 to accept connections from other machines")
	webDir := flag.String("web", "./web", "directory with the desktop front end")
	mobileDir := flag.String("web-mobile", "", "directory with the mobile front end (defaults to -web)")
	origins := flag.String("origins", defaultOrigins, "CORS allowed origins")
	aiTimeout := flag.Duration("ai-timeout", 30*time.Second, "upper bound for one engine move (0 = none)")
	parallel := flag.Bool("parallel", true, "search root moves in parallel")
	open := flag.Bool("open", false, "open the default browser after start")
	flag.Parse()

	if !isLoopback(*addr) {
		log.Printf("warning: %s is reachable from other machines", *addr)
	}

	srv := httpserver.New(httpserver.Config{
		WebDir:       *webDir,
		MobileDir:    *mobileDir,
		AllowOrigins: *origins,
		AITimeout:    *aiTimeout,
		Parallel:     *parallel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if *open {
		// 稍等服务器起来再开浏览器
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser(localURL(*addr))
		}()
	}

	log.Printf("serving static from %s", *webDir)
	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

// Package mobile 给手机壳用的入口：只暴露字符串参数，方便 gomobile bind。
package mobile

import (
	"errors"
	"log"
	"net"
	"sync"

	httpserver "centre/internal/server/http"
)

var (
	mu      sync.Mutex
	running *httpserver.Server
	addr    string
)

// StartServer 在 127.0.0.1:port 后台启动本地服务，返回实际监听地址。
// webDir: 解压后的前端目录
// port: 例如 "2888"，"0" 让系统挑一个空闲端口
func StartServer(webDir string, port string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if running != nil {
		return "", errors.New("server already running on " + addr)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		return "", err
	}
	s := httpserver.New(httpserver.Config{WebDir: webDir, MobileDir: webDir, Parallel: true})

	// 后台跑，不能卡住安卓 UI 线程
	go func() {
		if err := s.App().Listener(ln); err != nil {
			log.Printf("[mobile] server error: %v", err)
		}
	}()
	running = s
	addr = ln.Addr().String()
	log.Printf("[mobile] serving %s on %s", webDir, addr)
	return addr, nil
}

func StopServer() error {
	mu.Lock()
	defer mu.Unlock()
	if running == nil {
		return nil
	}
	err := running.Shutdown()
	running, addr = nil, ""
	return err
}

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	webview "github.com/webview/webview_go"

	"github.com/cliniclab/medscreen/internal/config"
	"github.com/cliniclab/medscreen/internal/server"
)

var version = "dev"

// defaultConfigFile is picked up from the working directory when present
const defaultConfigFile = "medscreen.yaml"

// basePort is where the port scan starts when none is configured
const basePort = 8750

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "HTTP server port (0 scans for a free port)")
	modelsDir := flag.String("models-dir", "", "Directory containing model artifacts")
	configPath := flag.String("config", "", "Path to a YAML config file")
	headless := flag.Bool("headless", false, "Run in headless mode (no GUI window)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", config.AppName, version)
		os.Exit(0)
	}

	// Resolve configuration:
	// 1. Built-in defaults
	// 2. The -config file, or ./medscreen.yaml when present
	// 3. Explicit flags take priority over both
	cfg := config.Default()

	path := *configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
		log.Printf("Using config file: %s", path)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "models-dir":
			cfg.ModelsDir = *modelsDir
		case "headless":
			cfg.Headless = *headless
		}
	})
	cfg.Version = version

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Find an available port (try up to 10 ports starting from the requested one)
	startPort := cfg.Port
	if startPort == 0 {
		startPort = basePort
	}
	availablePort, err := findAvailablePort(cfg.Host, startPort, 10)
	if err != nil {
		log.Fatalf("Failed to find available port: %v", err)
	}
	if cfg.Port != 0 && availablePort != cfg.Port {
		log.Printf("Port %d in use, using port %d instead", cfg.Port, availablePort)
	}
	cfg.Port = availablePort

	log.Printf("%s v%s starting on port %d", config.AppName, version, cfg.Port)
	log.Printf("Models directory: %s", cfg.ModelsDir)

	// Create and start the server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for server to be ready
	serverURL := fmt.Sprintf("http://%s", srv.Addr())
	waitForServer(srv.Addr(), 10*time.Second)

	if cfg.Headless {
		// Headless mode: wait for signal or error
		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server error: %v", err)
			}
		case sig := <-stop:
			log.Printf("Received %v signal, shutting down...", sig)
			if err := srv.Stop(); err != nil {
				log.Printf("Error during shutdown: %v", err)
			}
		}
	} else {
		// GUI mode: open embedded WebView window
		log.Printf("Opening application window...")
		w := webview.New(false)
		defer w.Destroy()

		w.SetTitle(config.AppName)
		w.SetSize(1180, 820, webview.HintNone)
		w.Navigate(serverURL)

		// When the webview window closes, shut down the server
		go func() {
			select {
			case err := <-errCh:
				if err != nil {
					log.Printf("Server error: %v", err)
				}
			case sig := <-stop:
				log.Printf("Received %v signal, shutting down...", sig)
				w.Terminate()
			}
		}()

		// Run blocks until the window is closed
		w.Run()

		log.Printf("Window closed, shutting down server...")
		if err := srv.Stop(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

// waitForServer polls until the server is accepting connections
func waitForServer(addr string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	log.Printf("Warning: server may not be ready at %s", addr)
}

// findAvailablePort finds an available port, starting from the given port.
// If the port is in use, it tries subsequent ports up to maxAttempts times.
func findAvailablePort(host string, startPort int, maxAttempts int) (int, error) {
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		addr := fmt.Sprintf("%s:%d", host, port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port found after %d attempts starting from %d", maxAttempts, startPort)
}

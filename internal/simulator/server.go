// Package simulator serves the setup-mode HTTP API of a device so the console
// can be exercised without hardware.
//
// The simulator answers GET /browse.json, GET /config.json and POST /save the
// way a device does: a save the device refuses is answered with 422 and a
// plain-text reason. When Advertise is set, the simulator also announces itself
// over mDNS so `apsetup scan` can find it.
package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/apsetup/internal/discovery"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/logging"
	"github.com/muurk/apsetup/internal/state"
)

const (
	// shutdownTimeout bounds how long Shutdown waits for in-flight requests
	shutdownTimeout = 5 * time.Second

	maxRequestSize = 64 << 10
)

// Config holds the simulator configuration
type Config struct {
	Host     string
	Port     int
	LogLevel string

	// Configured, DeviceName and Webhook seed /config.json.
	Configured bool
	DeviceName string
	Webhook    string

	// APs is the scan result; nil uses DefaultAccessPoints.
	APs []state.AccessPoint

	// Passkeys restricts which passkey each network accepts.
	Passkeys map[string]string

	// ScanDelay is how long /browse.json takes to answer.
	ScanDelay time.Duration

	// Advertise announces the simulator over mDNS.
	Advertise bool
}

// Server is a simulated device
type Server struct {
	config     *Config
	device     *Device
	httpServer *http.Server
	wg         sync.WaitGroup

	// mu guards listener and mdns, which Serve sets while handlers and
	// Addr read them.
	mu       sync.Mutex
	listener net.Listener
	mdns     *zeroconf.Server
}

// New creates a simulator. It initializes logging from config.LogLevel.
func New(config *Config) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return NewWithDevice(config, NewDevice(state.DeviceConfig{
		APConfigured: config.Configured,
		DeviceName:   config.DeviceName,
		Webhook:      config.Webhook,
	}, config.APs, config.Passkeys)), nil
}

// NewWithDevice creates a simulator serving device. It leaves logging alone.
func NewWithDevice(config *Config, device *Device) *Server {
	s := &Server{config: config, device: device}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Device returns the simulated device.
func (s *Server) Device() *Device {
	return s.device
}

// Handler returns the HTTP handler for the device API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+gateway.PathBrowse, s.handleBrowse)
	mux.HandleFunc("GET "+gateway.PathConfig, s.handleConfig)
	mux.HandleFunc("POST "+gateway.PathSave, s.handleSave)
	return logRequests(mux)
}

// Start listens on the configured address and blocks until a shutdown
// signal arrives or the server fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	logging.Info("Starting device simulator",
		zap.String("addr", addr),
		zap.Bool("configured", s.config.Configured),
		zap.String("device_name", s.config.DeviceName),
		zap.Int("access_points", len(s.device.AccessPoints())),
	)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping simulator...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Serve answers requests on listener until Shutdown is called.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	if s.config.Advertise {
		if err := s.advertise(listener.Addr()); err != nil {
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}

	logging.Info("Simulator listening", zap.String("addr", listener.Addr().String()))

	s.wg.Add(1)
	defer s.wg.Done()
	err := s.httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the address the simulator listens on, once serving.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) advertise(addr net.Addr) error {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return fmt.Errorf("cannot advertise non-TCP address %s", addr)
	}

	name := s.config.DeviceName
	if name == "" {
		name = "apsetup-sim"
	}
	txt := txtRecords(s.device.Config())

	server, err := zeroconf.Register(name, discovery.ServiceType, discovery.ServiceDomain, tcp.Port, txt, nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	s.mu.Lock()
	s.mdns = server
	s.mu.Unlock()
	logging.Info("Advertising over mDNS", zap.String("instance", name), zap.Int("port", tcp.Port))
	return nil
}

// txtRecords describes cfg in the mDNS TXT keys discovery reads.
func txtRecords(cfg state.DeviceConfig) []string {
	return []string{
		discovery.TXTSetupKey + "=1",
		fmt.Sprintf("%s=%t", discovery.TXTConfiguredKey, cfg.APConfigured),
		"path=/",
	}
}

// updateAdvertisement republishes the TXT records after a save.
func (s *Server) updateAdvertisement(cfg state.DeviceConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mdns == nil {
		return
	}
	s.mdns.SetText(txtRecords(cfg))
	logging.Debug("mDNS TXT records updated", zap.Bool("configured", cfg.APConfigured))
}

// Shutdown stops the simulator, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down simulator...")

	s.mu.Lock()
	if s.mdns != nil {
		s.mdns.Shutdown()
		s.mdns = nil
	}
	s.mu.Unlock()

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		logging.Warn("Shutdown timeout reached, some requests may not have completed", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	logging.Sync()
	return err
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	if s.config.ScanDelay > 0 {
		select {
		case <-time.After(s.config.ScanDelay):
		case <-r.Context().Done():
			return
		}
	}
	writeJSON(w, s.device.Scan())
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.device.Config())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		http.Error(w, "could not read request", http.StatusBadRequest)
		return
	}

	var req gateway.SaveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logging.LogRawBytes("Malformed save request", body)
		writeRejection(w, "request is not valid JSON")
		return
	}

	if err := s.device.Apply(&req); err != nil {
		reason, _ := gateway.RejectionMessage(err)
		logging.Info("Save rejected", zap.String("reason", reason))
		writeRejection(w, reason)
		return
	}

	cfg := s.device.Config()
	logging.Info("Configuration saved",
		zap.String("device_name", cfg.DeviceName),
		zap.String("ssid", s.device.SSID()),
		zap.Bool("configured", cfg.APConfigured),
	)
	s.updateAdvertisement(cfg)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to write response", zap.Error(err))
	}
}

func writeRejection(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_, _ = io.WriteString(w, reason)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, rec.status)
	})
}

/*
Package configs is responsible for loading and parsing the application's
configuration settings.

It configures server parameters by reading operating system environment
variables: the running environment, listen port, CORS/websocket allowed
origins, and the chat engine's two tunables (outbound queue capacity and
maximum frame size).
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the
// application to run. All configuration values are loaded from
// environment variables.
type AppConfig struct {
	// Environment defines the application's operating environment (e.g., "development", "production").
	Environment string

	// Port is the port number on which the HTTP server will listen.
	Port int

	// AllowedOrigins is the list of origins permitted for CORS and WebSocket connections.
	AllowedOrigins []string

	// OutboundQueueSize is the capacity of each client's bounded outbound
	// queue; a client whose queue is full at fan-out time is evicted as
	// too slow.
	OutboundQueueSize int

	// MaxFrameBytes is the maximum accepted raw frame size; larger frames
	// are rejected with an error reply without being parsed.
	MaxFrameBytes int
}

// LoadConfig reads and parses the application configuration from
// environment variables, applying defaults for anything unset.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8765"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	queueSizeStr := os.Getenv("OUTBOUND_QUEUE_SIZE")
	if queueSizeStr == "" {
		queueSizeStr = "200"
	}
	queueSize, err := strconv.Atoi(queueSizeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOUND_QUEUE_SIZE environment variable: %w", err)
	}
	cfg.OutboundQueueSize = queueSize

	maxFrameStr := os.Getenv("MAX_FRAME_BYTES")
	if maxFrameStr == "" {
		maxFrameStr = "1048576"
	}
	maxFrame, err := strconv.Atoi(maxFrameStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_FRAME_BYTES environment variable: %w", err)
	}
	cfg.MaxFrameBytes = maxFrame

	return cfg, nil
}

/*
Package handler provides the HTTP handler function for WebSocket connection
upgrading and initialization.

This file contains HandleWebSocket, which upgrades the HTTP connection,
registers the resulting client with the registry, and runs its read pump
to completion before unregistering it.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"roomrelay/internal/app/chat"
	"roomrelay/internal/configs"
	"roomrelay/internal/pkg/logx"
)

// HandleWebSocket creates an HTTP HandlerFunc that upgrades the request to
// a websocket connection and drives one client's entire connection
// lifecycle: register, welcome, read loop, unregister.
func HandleWebSocket(reg *chat.Registry, upgrader websocket.Upgrader, cfg *configs.AppConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := reg.Connect(conn, cfg.OutboundQueueSize, cfg.MaxFrameBytes)

		logx.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

		client.ReadPump(context.Background())

		reg.UnregisterClient(client)
		client.Close()

		logx.Info("WebSocket connection closed", "remote_addr", r.RemoteAddr)
	}
}

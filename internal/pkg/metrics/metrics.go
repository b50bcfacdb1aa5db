/*
Package metrics declares the Prometheus instrumentation for the chat
engine's concurrency core: connection counts, room counts, fan-out volume,
and slow-client evictions.

Naming convention: namespace_subsystem_name.
  - namespace: roomrelay (application-level grouping)
  - subsystem: client, room, connection (feature-level grouping)
  - name: specific metric (connections_active, evictions_total, ...)
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClientsConnected tracks the current number of registered clients.
	ClientsConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roomrelay",
		Subsystem: "client",
		Name:      "connections_active",
		Help:      "Current number of registered client connections",
	})

	// RoomsActive tracks the current number of rooms.
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roomrelay",
		Subsystem: "room",
		Name:      "rooms_active",
		Help:      "Current number of rooms",
	})

	// RoomMembers tracks member count per room.
	RoomMembers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "roomrelay",
		Subsystem: "room",
		Name:      "members_count",
		Help:      "Number of members in each room",
	}, []string{"room_id"})

	// FanoutEvents tracks room dispatcher fan-out attempts.
	FanoutEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roomrelay",
		Subsystem: "room",
		Name:      "fanout_total",
		Help:      "Total fan-out attempts from room dispatchers to member outbound queues",
	}, []string{"result"})

	// SlowClientEvictions tracks clients evicted for a full outbound queue.
	SlowClientEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomrelay",
		Subsystem: "client",
		Name:      "slow_evictions_total",
		Help:      "Total number of clients evicted for a full outbound queue",
	})

	// ActionsHandled tracks action handler invocations by action and outcome.
	ActionsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roomrelay",
		Subsystem: "connection",
		Name:      "actions_total",
		Help:      "Total action frames handled, by action name and outcome",
	}, []string{"action", "outcome"})
)

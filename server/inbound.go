// SPDX-FileCopyrightText: 2024 Tony Germaneri
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

// Make sure to register in init function
type (
	// Focus moves the focal point that drives chunk streaming.
	// The most recent focus from any client wins.
	Focus struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
	}

	// QueryRegion requests a compressed snapshot of the loaded chunks
	// intersecting a world-space rectangle (inclusive corners).
	QueryRegion struct {
		MinX int32 `json:"minX"`
		MinY int32 `json:"minY"`
		MaxX int32 `json:"maxX"`
		MaxY int32 `json:"maxY"`
	}

	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}
)

func init() {
	registerInbound(
		Focus{},
		QueryRegion{},
	)
}

func (f Focus) Inbound(hub *Hub, _ Client) {
	hub.focus = f
	hub.hasFocus = true
}

func (q QueryRegion) Inbound(hub *Hub, client Client) {
	client.Send(hub.buildRegion(q))
}

func (i InvalidInbound) Inbound(_ *Hub, _ Client) {}

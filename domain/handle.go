package domain

import "time"

// DeliveryHandle is a reusable webhook bound to one persona inside one channel.
type DeliveryHandle struct {
	ID          string
	Token       string
	ChannelID   string
	PersonaName string
	LastUsedAt  time.Time
}

// RemoteHandle is a webhook as reported by the transport.
// Owned tells whether the bot created it.
type RemoteHandle struct {
	ID        string
	Token     string
	ChannelID string
	Name      string
	Owned     bool
	CreatedAt time.Time
}

// Remote rebuilds the transport view of a cached handle.
func (h DeliveryHandle) Remote(name string) RemoteHandle {
	return RemoteHandle{
		ID:        h.ID,
		Token:     h.Token,
		ChannelID: h.ChannelID,
		Name:      name,
		Owned:     true,
	}
}

package api

// Quota is the account's resource entitlement snapshot.
//
// Slots is the number of servers the account may still create. All other
// fields are per-server maximums: Memory and Disk in MB, CPU in percent
// points (100 = one core).
type Quota struct {
	Slots       int `json:"servers"`
	Memory      int `json:"memory"`
	Disk        int `json:"disk"`
	CPU         int `json:"cpu"`
	Databases   int `json:"databases"`
	Allocations int `json:"allocations"`
}

// Egg is a deployable software image from the panel catalog.
//
// ID is the panel's storage key; EggID is the public identifier used in
// create requests and shown to users.
type Egg struct {
	ID          int    `json:"id"`
	EggID       int    `json:"egg_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DockerImage string `json:"docker_image,omitempty"`
	Startup     string `json:"startup,omitempty"`
	IconURL     string `json:"icon,omitempty"`
}

// Node is a deployment target (physical host / region).
type Node struct {
	ID       int    `json:"id"`
	NodeID   int    `json:"node_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Server is a provisioned server as returned by the panel.
type Server struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Node        string `json:"node"`
	Status      string `json:"status,omitempty"`
	Memory      int    `json:"memory"`
	Disk        int    `json:"disk"`
	CPU         int    `json:"cpu"`
	Databases   int    `json:"databases"`
	Allocations int    `json:"allocations"`
	EggName     string `json:"egg,omitempty"`
}

// CreateServerRequest is the payload for server provisioning.
//
// EggID and NodeID carry the public identifiers, not storage keys.
type CreateServerRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Memory      int    `json:"memory"`
	Disk        int    `json:"disk"`
	CPU         int    `json:"cpu"`
	Databases   int    `json:"databases"`
	Allocations int    `json:"allocations"`
	EggID       int    `json:"egg_id"`
	NodeID      int    `json:"node_id"`
}

// CreateNodeRequest is the admin payload for registering a node.
type CreateNodeRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	FQDN     string `json:"fqdn"`
	Memory   int    `json:"memory"`
	Disk     int    `json:"disk"`
}

// CreateEggRequest is the admin payload for publishing an egg.
type CreateEggRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DockerImage string `json:"docker_image"`
	Startup     string `json:"startup,omitempty"`
	IconURL     string `json:"icon,omitempty"`
}

// Envelope shapes used by the panel API. Single resources arrive as
// {"object": "...", "attributes": {...}}; collections as
// {"object": "list", "data": [envelope, ...]}.

type quotaEnvelope struct {
	Object     string `json:"object"`
	Attributes Quota  `json:"attributes"`
}

type eggEnvelope struct {
	Object     string `json:"object"`
	Attributes Egg    `json:"attributes"`
}

type eggListEnvelope struct {
	Object string        `json:"object"`
	Data   []eggEnvelope `json:"data"`
}

type nodeEnvelope struct {
	Object     string `json:"object"`
	Attributes Node   `json:"attributes"`
}

type nodeListEnvelope struct {
	Object string         `json:"object"`
	Data   []nodeEnvelope `json:"data"`
}

type serverEnvelope struct {
	Object     string `json:"object"`
	Attributes Server `json:"attributes"`
}

type serverListEnvelope struct {
	Object string           `json:"object"`
	Data   []serverEnvelope `json:"data"`
}

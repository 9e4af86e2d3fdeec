package api

// Routes served to the game server.
const (
	RouteHealth    = "/healthz"
	RouteInfo      = "/info"
	RouteNegotiate = "/negotiate"
	RouteCombat    = "/combat"
)

// Identity is the static bot metadata reported on /info.
type Identity struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	Version  string `json:"version"`
}

type HealthMessage struct {
	Status string `json:"status"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}

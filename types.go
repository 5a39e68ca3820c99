package vaultclient

// Secret is the generic response to a secret read or write, carrying the
// secret data along with its lease metadata.
type Secret struct {
	RequestID     string         `json:"request_id"`
	LeaseID       string         `json:"lease_id"`
	LeaseDuration int            `json:"lease_duration"`
	Renewable     bool           `json:"renewable"`
	Data          map[string]any `json:"data"`
	Warnings      []string       `json:"warnings"`
}

// InitRequest is the request to initialize a new Vault.
type InitRequest struct {
	SecretShares    int `json:"secret_shares"`
	SecretThreshold int `json:"secret_threshold"`
}

// InitResponse holds the unseal keys and initial root token returned when a
// Vault is initialized. Handle with care.
type InitResponse struct {
	Keys      []string `json:"keys"`
	KeysB64   []string `json:"keys_base64"`
	RootToken string   `json:"root_token"`
}

type initStatusResponse struct {
	Initialized bool `json:"initialized"`
}

// SealStatusResponse describes the seal state of the Vault.
type SealStatusResponse struct {
	Sealed   bool   `json:"sealed"`
	T        int    `json:"t"`
	N        int    `json:"n"`
	Progress int    `json:"progress"`
	Version  string `json:"version"`
}

// HealthResponse describes the health of the Vault server. Note that an
// uninitialized, sealed, or standby server still reports health - check the
// flags.
type HealthResponse struct {
	Initialized   bool   `json:"initialized"`
	Sealed        bool   `json:"sealed"`
	Standby       bool   `json:"standby"`
	ServerTimeUTC int64  `json:"server_time_utc"`
	Version       string `json:"version"`
	ClusterName   string `json:"cluster_name"`
	ClusterID     string `json:"cluster_id"`
}

// Policy is a named set of policy rules, in Vault's HCL policy syntax.
type Policy struct {
	Name  string `json:"name"`
	Rules string `json:"rules"`
}

type listPoliciesResponse struct {
	Policies []string `json:"policies"`
}

package domain

// Config mirrors ~/.dbpilot/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	API                 APISettings        `yaml:"api"`
	Storage             StorageSettings    `yaml:"storage"`
	Connection          ConnectionSettings `yaml:"connection"`
	Preferences         Preferences        `yaml:"preferences"`
}

// APISettings locate the external query backend.
type APISettings struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// StorageSettings select the durable key/value backend.
type StorageSettings struct {
	Backend string `yaml:"backend"` // file or sqlite
	Dir     string `yaml:"dir"`
}

// ConnectionSettings control how session activation performs its handshake.
// "simulated" stands in for a real network round trip; "gateway" routes the
// handshake through the backend's test-connection operation.
type ConnectionSettings struct {
	Handshake        string `yaml:"handshake"`
	HandshakeDelayMS int    `yaml:"handshake_delay_ms"`
}

// Preferences captures user level toggles.
type Preferences struct {
	HistoryLimit int `yaml:"history_limit"`
}

package domain

// ConnectionProfile is a saved set of database credentials the user can
// reconnect to. Profiles are never edited in place; replacing one means
// removing it and adding a new one.
type ConnectionProfile struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
}

// ProfileFields carries user input for a new profile, before an identifier
// has been assigned.
type ProfileFields struct {
	Name     string
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Validate checks that every required field is non-empty. Port and password
// are optional (a blank password is a legitimate credential).
func (f ProfileFields) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"host", f.Host},
		{"user", f.User},
		{"database", f.Database},
	}
	for _, field := range required {
		if field.value == "" {
			return &ValidationError{Field: field.name}
		}
	}
	if f.Port < 0 {
		return &ValidationError{Field: "port"}
	}
	return nil
}

package config

// Provider holds the PTV Timetable API settings.
type Provider struct {
	BaseURL   string `yaml:"baseURL" json:"baseURL" validate:"required,url"`
	DevID     string `yaml:"devID" json:"devID"`
	APIKey    string `yaml:"apiKey" json:"apiKey"`
	TimeoutMS int    `yaml:"timeoutMS" json:"timeoutMS" validate:"gte=0"`
	Retries   int    `yaml:"retries" json:"retries" validate:"gte=0,lte=10"`
}

// Departures holds the defaults used when resolving departures.
type Departures struct {
	Mode        string `yaml:"mode" json:"mode"`
	Limit       int    `yaml:"limit" json:"limit" validate:"gte=1,lte=20"`
	MaxResults  int    `yaml:"maxResults" json:"maxResults" validate:"gte=0,lte=100"`
	Timezone    string `yaml:"timezone" json:"timezone" validate:"required"`
	Clock       string `yaml:"clock" json:"clock" validate:"oneof=12h 24h"`
	Concurrency int    `yaml:"concurrency" json:"concurrency" validate:"gte=1"`
}

// Server holds the HTTP surface settings.
type Server struct {
	Listen string `yaml:"listen" json:"listen" validate:"required"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Provider   Provider   `yaml:"provider" json:"provider"`
	Departures Departures `yaml:"departures" json:"departures"`
	Server     Server     `yaml:"server" json:"server"`
}

package config

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Forecast    ForecastConfig  `mapstructure:"forecast"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// ForecastConfig describes the CWA open-data endpoint and the regions it accepts.
type ForecastConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	DatastoreID string `mapstructure:"datastore_id"`
	APIKey      string `mapstructure:"api_key"`
	// Timeout in seconds for the single outbound call.
	Timeout int `mapstructure:"timeout"`
	// InsecureSkipVerify disables TLS certificate checks. Only for hosts
	// without a usable CA bundle.
	InsecureSkipVerify bool     `mapstructure:"insecure_skip_verify"`
	Regions            []string `mapstructure:"regions"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// TaiwanRegions are the 22 top-level administrative divisions accepted by
// the F-C0032-001 datastore.
var TaiwanRegions = []string{
	"臺北市", "新北市", "桃園市", "臺中市", "臺南市", "高雄市",
	"基隆市", "新竹市", "嘉義市",
	"新竹縣", "苗栗縣", "彰化縣", "南投縣", "雲林縣",
	"嘉義縣", "屏東縣", "宜蘭縣", "花蓮縣", "臺東縣",
	"澎湖縣", "金門縣", "連江縣",
}

func NewDefaultConfig() *Config {
	regions := make([]string, len(TaiwanRegions))
	copy(regions, TaiwanRegions)

	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Forecast: ForecastConfig{
			BaseURL:            "https://opendata.cwa.gov.tw/api/v1/rest/datastore",
			DatastoreID:        "F-C0032-001",
			APIKey:             "",
			Timeout:            5,
			InsecureSkipVerify: false,
			Regions:            regions,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "tempo:4317",
			ServiceName: "cwa-forecast",
		},
	}
}

package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de ambos binarios (api y dashboard).
// Se lee vía Viper desde variables de entorno y, opcionalmente, desde .env / config.env.
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Dashboard HTTPConfig
	Backend   BackendConfig
	Redis     RedisConfig
	Session   SessionConfig
	Reports   ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Enabled es falso cuando no hay DATABASE_URL ni DB_HOST: la API usa memoria.
type DBConfig struct {
	Enabled     bool
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con URL encoding para caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración del token de sesión emitido por la API.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig dirección de escucha de un servidor.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig ubicación de la API de identidad que consume el dashboard.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// RedisConfig conexión a Redis (pista de sesión y revocación de tokens).
// URL vacía = adaptadores en memoria.
type RedisConfig struct {
	URL string
}

// SessionConfig parámetros de la sesión del dashboard.
type SessionConfig struct {
	HintTTL      time.Duration
	Idle         time.Duration // handles en memoria sin uso se liberan tras Idle
	CookieSecure bool
}

// ReportConfig parámetros de los reportes de inventario.
type ReportConfig struct {
	LowStockThreshold int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "rapidxcel-logistics"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Enabled:     v.IsSet("DATABASE_URL") || v.IsSet("DB_HOST"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "rapidxcel"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "rapidxcel-logistics"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Dashboard: HTTPConfig{
			Host: getString(v, "DASHBOARD_HOST", "0.0.0.0"),
			Port: getInt(v, "DASHBOARD_PORT", 3000),
		},
		Backend: BackendConfig{
			URL:     strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:8080"), "/"),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
		},
		Session: SessionConfig{
			HintTTL:      time.Duration(getInt(v, "SESSION_HINT_TTL_MINUTES", 24*60)) * time.Minute,
			Idle:         time.Duration(getInt(v, "SESSION_IDLE_MINUTES", 30)) * time.Minute,
			CookieSecure: getBool(v, "COOKIE_SECURE", false),
		},
		Reports: ReportConfig{
			LowStockThreshold: getInt(v, "LOW_STOCK_THRESHOLD", 10),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("config: BACKEND_TIMEOUT_SECONDS debe ser positivo")
	}
	if c.Session.HintTTL <= 0 {
		return fmt.Errorf("config: SESSION_HINT_TTL_MINUTES debe ser positivo")
	}
	if c.Session.Idle <= 0 {
		return fmt.Errorf("config: SESSION_IDLE_MINUTES debe ser positivo")
	}
	if _, err := url.ParseRequestURI(c.Backend.URL); err != nil {
		return fmt.Errorf("config: BACKEND_URL inválida: %w", err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

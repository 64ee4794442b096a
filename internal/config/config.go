package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
		// Nombre visible del broker (aparece en los emails de OTP)
		Name string `yaml:"name"`
		// URL pública del broker (para armar links de login en authorize)
		BaseURL string `yaml:"base_url"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		MetricsAddr        string   `yaml:"metrics_addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Storage struct {
		// memory | postgres
		Driver   string `yaml:"driver"`
		Postgres struct {
			DSN          string `yaml:"dsn"`
			MaxOpenConns int    `yaml:"max_open_conns"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Secret string `yaml:"secret"`
		Issuer string `yaml:"issuer"`
	} `yaml:"jwt"`

	Auth struct {
		// TTL de la sesión (y del bearer token que la acompaña)
		SessionTTL time.Duration `yaml:"session_ttl"`
		// TTL del OTP de login
		OTPTTL time.Duration `yaml:"otp_ttl"`
		Cookie struct {
			Name     string `yaml:"name"`
			Domain   string `yaml:"domain"`
			SameSite string `yaml:"samesite"`
			Secure   bool   `yaml:"secure"`
		} `yaml:"cookie"`
	} `yaml:"auth"`

	Broker struct {
		// TTL del authorization code (ventana corta, single-use)
		CodeTTL time.Duration `yaml:"code_ttl"`
		// TTL del access token service-scoped emitido en el exchange
		ExchangeTokenTTL time.Duration `yaml:"exchange_token_ttl"`
	} `yaml:"broker"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Login   struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
		Verify struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"verify"`
	} `yaml:"rate"`

	SMTP struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"`                  // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // sólo dev
	} `yaml:"smtp"`

	Catalog struct {
		// TTL del cache de lectura de Services
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"catalog"`

	Bootstrap struct {
		// Email que se provisiona con rol admin si el sistema arranca sin admins
		AdminEmail string `yaml:"admin_email"`
	} `yaml:"bootstrap"`
}

// Load lee el YAML (opcional), aplica defaults y pisa con env.
// Un path vacío arma la config solo desde env + defaults.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.App.Name == "" {
		c.App.Name = "unosign"
	}
	if c.App.BaseURL == "" {
		c.App.BaseURL = "http://localhost:8080"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MetricsAddr == "" {
		c.Server.MetricsAddr = ":9090"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 30 * 24 * time.Hour // 30d
	}
	if c.Auth.OTPTTL == 0 {
		c.Auth.OTPTTL = 10 * time.Minute
	}
	if c.Auth.Cookie.Name == "" {
		c.Auth.Cookie.Name = "sso_token"
	}
	if c.Auth.Cookie.SameSite == "" {
		c.Auth.Cookie.SameSite = "Lax"
	}
	if c.Broker.CodeTTL == 0 {
		c.Broker.CodeTTL = 60 * time.Second
	}
	if c.Broker.ExchangeTokenTTL == 0 {
		c.Broker.ExchangeTokenTTL = time.Hour
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}
	if c.Rate.Verify.Limit == 0 {
		c.Rate.Verify.Limit = 10
	}
	if c.Rate.Verify.Window == "" {
		c.Rate.Verify.Window = "1m"
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.Catalog.CacheTTL == 0 {
		c.Catalog.CacheTTL = 2 * time.Minute
	}

	// Overrides por env + salvaguarda prod
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Guardia dura: en prod la cookie siempre viaja Secure.
	if strings.EqualFold(c.App.Env, "prod") {
		c.Auth.Cookie.Secure = true
	}

	return &c, nil
}

// Validate chequea los valores críticos.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt.secret es obligatorio (env JWT_SECRET)")
	}
	if len(strings.TrimSpace(c.JWT.Secret)) < 32 {
		return fmt.Errorf("config: jwt.secret demasiado corto (mínimo 32 bytes)")
	}
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			return fmt.Errorf("config: storage.postgres.dsn es obligatorio con driver=postgres")
		}
	default:
		return fmt.Errorf("config: storage.driver desconocido %q", c.Storage.Driver)
	}
	for _, w := range []string{c.Rate.Login.Window, c.Rate.Verify.Window} {
		if _, err := time.ParseDuration(w); err != nil {
			return fmt.Errorf("config: ventana de rate inválida %q: %w", w, err)
		}
	}
	return nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("APP_NAME"); ok {
		c.App.Name = v
	}
	if v, ok := getEnvStr("APP_BASE_URL"); ok {
		c.App.BaseURL = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("METRICS_ADDR"); ok {
		c.Server.MetricsAddr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("POSTGRES_DSN"); ok {
		c.Storage.Postgres.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}

	// AUTH
	if v, ok := getEnvDur("SESSION_TTL"); ok {
		c.Auth.SessionTTL = v
	}
	if v, ok := getEnvInt("SESSION_DURATION_DAYS"); ok {
		// compat con el deploy viejo, que configuraba días
		c.Auth.SessionTTL = time.Duration(v) * 24 * time.Hour
	}
	if v, ok := getEnvDur("OTP_TTL"); ok {
		c.Auth.OTPTTL = v
	}
	if v, ok := getEnvInt("OTP_EXPIRY_MINUTES"); ok {
		c.Auth.OTPTTL = time.Duration(v) * time.Minute
	}
	if v, ok := getEnvStr("AUTH_COOKIE_NAME"); ok {
		c.Auth.Cookie.Name = v
	}
	if v, ok := getEnvStr("AUTH_COOKIE_DOMAIN"); ok {
		c.Auth.Cookie.Domain = v
	}
	if v, ok := getEnvStr("AUTH_COOKIE_SAMESITE"); ok {
		c.Auth.Cookie.SameSite = v
	}
	if v, ok := getEnvBool("AUTH_COOKIE_SECURE"); ok {
		c.Auth.Cookie.Secure = v
	}

	// BROKER
	if v, ok := getEnvDur("AUTH_CODE_TTL"); ok {
		c.Broker.CodeTTL = v
	}
	if v, ok := getEnvInt("AUTH_CODE_EXPIRY_SECONDS"); ok {
		c.Broker.CodeTTL = time.Duration(v) * time.Second
	}
	if v, ok := getEnvDur("EXCHANGE_TOKEN_TTL"); ok {
		c.Broker.ExchangeTokenTTL = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_LOGIN_LIMIT"); ok {
		c.Rate.Login.Limit = v
	}
	if v, ok := getEnvStr("RATE_LOGIN_WINDOW"); ok {
		c.Rate.Login.Window = v
	}
	if v, ok := getEnvInt("RATE_VERIFY_LIMIT"); ok {
		c.Rate.Verify.Limit = v
	}
	if v, ok := getEnvStr("RATE_VERIFY_WINDOW"); ok {
		c.Rate.Verify.Window = v
	}

	// SMTP
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.SMTP.From = v
	}
	if v, ok := getEnvStr("SMTP_TLS"); ok {
		c.SMTP.TLS = strings.ToLower(v)
	}
	if v, ok := getEnvBool("SMTP_INSECURE_SKIP_VERIFY"); ok {
		c.SMTP.InsecureSkipVerify = v
	}

	// CATALOG
	if v, ok := getEnvDur("CATALOG_CACHE_TTL"); ok {
		c.Catalog.CacheTTL = v
	}

	// BOOTSTRAP
	if v, ok := getEnvStr("BOOTSTRAP_ADMIN_EMAIL"); ok {
		c.Bootstrap.AdminEmail = v
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Counter   CounterConfig   `mapstructure:"counter"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Photos    PhotosConfig    `mapstructure:"photos"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Public    PublicConfig    `mapstructure:"public"`
	Lookup    LookupConfig    `mapstructure:"lookup"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

type HTTPConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxUpload    int64         `mapstructure:"max_upload_bytes"`
}

// Addr devuelve ":<port>" como hacía main con PORT.
func (h HTTPConfig) Addr() string {
	p := strings.TrimSpace(h.Port)
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	// Vacío => repos in-memory (modo dev).
	DSN     string `mapstructure:"dsn"`
	Migrate bool   `mapstructure:"migrate"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type CounterConfig struct {
	// auto | memory | postgres | redis
	Backend string `mapstructure:"backend"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	AdminUser     string        `mapstructure:"admin_user"`
	AdminPassHash string        `mapstructure:"admin_pass_hash"`
}

type PhotosConfig struct {
	// local | cloudinary
	Backend    string           `mapstructure:"backend"`
	LocalDir   string           `mapstructure:"local_dir"`
	PublicPath string           `mapstructure:"public_path"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
}

type CloudinaryConfig struct {
	CloudName string        `mapstructure:"cloud_name"`
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	Folder    string        `mapstructure:"folder"`
	Timeout   time.Duration `mapstructure:"timeout"`
	// Optimized guarda la URL transformada (800px, f_auto, q_auto).
	Optimized bool `mapstructure:"optimized"`
}

type RateLimitConfig struct {
	PublicCreateLimit  int           `mapstructure:"public_create_limit"`
	PublicCreateWindow time.Duration `mapstructure:"public_create_window"`
}

type DocumentsConfig struct {
	TemplatesDir  string `mapstructure:"templates_dir"`
	SignatureFont string `mapstructure:"signature_font"`
}

type PublicConfig struct {
	// Base pública usada en el QR del PDF (/r/{code}).
	BaseURL string `mapstructure:"base_url"`
	// Ruta de la UI de consulta a la que redirige /r/{code}.
	LookupPath   string `mapstructure:"lookup_path"`
	SocialURL    string `mapstructure:"social_url"`
	StoreURL     string `mapstructure:"store_url"`
	DonationInfo string `mapstructure:"donation_info"`
}

type LookupConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "petdoc-id")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.max_upload_bytes", 8<<20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.migrate", true)
	v.SetDefault("redis.url", "")
	v.SetDefault("counter.backend", "auto")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.admin_user", "")
	v.SetDefault("auth.admin_pass_hash", "")

	v.SetDefault("photos.backend", "local")
	v.SetDefault("photos.local_dir", "./uploads")
	v.SetDefault("photos.public_path", "/uploads")
	v.SetDefault("photos.cloudinary.cloud_name", "")
	v.SetDefault("photos.cloudinary.api_key", "")
	v.SetDefault("photos.cloudinary.api_secret", "")
	v.SetDefault("photos.cloudinary.folder", "petdoc/photos")
	v.SetDefault("photos.cloudinary.timeout", 20*time.Second)
	v.SetDefault("photos.cloudinary.optimized", true)

	v.SetDefault("ratelimit.public_create_limit", 50)
	v.SetDefault("ratelimit.public_create_window", 15*time.Minute)

	v.SetDefault("documents.templates_dir", "./assets/templates")
	v.SetDefault("documents.signature_font", "")

	v.SetDefault("public.base_url", "https://petdocid.onrender.com")
	v.SetDefault("public.lookup_path", "/")
	v.SetDefault("public.social_url", "https://www.instagram.com/petdocid/")
	v.SetDefault("public.store_url", "https://mercadolivre.com/sec/23SLwXP")
	v.SetDefault("public.donation_info", "")

	v.SetDefault("lookup.cache_ttl", 5*time.Minute)
}

// Load arma la config: defaults < archivo (opcional) < env.
// Env: PETDOC_<SECCION>_<CLAVE>, p.ej. PETDOC_AUTH_JWT_SECRET.
// Se mantienen PORT y DB_DSN por compatibilidad con los despliegues existentes.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvPrefix("PETDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("http.port", "PETDOC_HTTP_PORT", "PORT")
	_ = v.BindEnv("db.dsn", "PETDOC_DB_DSN", "DB_DSN")
	_ = v.BindEnv("redis.url", "PETDOC_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("log.level", "PETDOC_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "PETDOC_LOG_FORMAT", "LOG_FORMAT")

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Counter.Backend {
	case "auto", "memory", "postgres", "redis":
	default:
		errs = append(errs, fmt.Errorf("counter.backend must be auto|memory|postgres|redis, got %q", c.Counter.Backend))
	}
	if c.Counter.Backend == "postgres" && c.DB.DSN == "" {
		errs = append(errs, errors.New("counter.backend=postgres requires db.dsn"))
	}
	if c.Counter.Backend == "redis" && c.Redis.URL == "" {
		errs = append(errs, errors.New("counter.backend=redis requires redis.url"))
	}

	switch c.Photos.Backend {
	case "local":
	case "cloudinary":
		cl := c.Photos.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			errs = append(errs, errors.New("photos.backend=cloudinary requires cloud_name, api_key and api_secret"))
		}
	default:
		errs = append(errs, fmt.Errorf("photos.backend must be local|cloudinary, got %q", c.Photos.Backend))
	}

	if c.RateLimit.PublicCreateLimit <= 0 || c.RateLimit.PublicCreateWindow <= 0 {
		errs = append(errs, errors.New("ratelimit.public_create_limit and public_create_window must be positive"))
	}
	// el QR del PDF tiene que abrir desde un celular
	if u, err := url.Parse(c.Public.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("public.base_url must be an absolute http(s) URL, got %q", c.Public.BaseURL))
	}
	if c.HTTP.MaxUpload <= 0 {
		errs = append(errs, errors.New("http.max_upload_bytes must be positive"))
	}

	return errors.Join(errs...)
}

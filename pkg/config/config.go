package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Upload UploadConfig
	Auth   AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de la base de datos embebida (SQLite).
type DBConfig struct {
	Path string // ruta del archivo .db; ":memory:" para tests
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UploadConfig configuración de subida de archivos.
type UploadConfig struct {
	Dir               string   // directorio local donde se guardan los archivos
	MaxSizeMB         int      // tamaño máximo por archivo
	AllowedExtensions []string // extensiones permitidas (con punto, minúsculas)
}

// MaxSizeBytes devuelve el límite de subida en bytes.
func (c UploadConfig) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// AuthConfig reglas de cuentas: rol por defecto, costo bcrypt y bootstrap de admin.
type AuthConfig struct {
	DefaultRole          string
	BcryptCost           int
	EnableAdminBootstrap bool
	AdminEmail           string
	AdminPassword        string
	AdminFirstName       string
	AdminLastName        string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_PATH, JWT_SECRET, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "tienda-api"),
		},
		DB: DBConfig{
			Path: getString(v, "DB_PATH", "./data/tienda.db"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "tienda-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Upload: UploadConfig{
			Dir:               getString(v, "UPLOAD_DIR", "./uploads"),
			MaxSizeMB:         getInt(v, "MAX_UPLOAD_SIZE_MB", 10),
			AllowedExtensions: splitExtensions(getString(v, "ALLOWED_UPLOAD_EXTENSIONS", ".jpg,.jpeg,.png,.gif,.pdf,.txt,.csv,.xlsx,.docx")),
		},
		Auth: AuthConfig{
			DefaultRole:          getString(v, "DEFAULT_ROLE", "user"),
			BcryptCost:           getInt(v, "BCRYPT_COST", 10),
			EnableAdminBootstrap: getBool(v, "ENABLE_ADMIN_BOOTSTRAP", false),
			AdminEmail:           getString(v, "ADMIN_EMAIL", ""),
			AdminPassword:        getString(v, "ADMIN_PASSWORD", ""),
			AdminFirstName:       getString(v, "ADMIN_FIRST_NAME", "Admin"),
			AdminLastName:        getString(v, "ADMIN_LAST_NAME", "Sistema"),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env != "development" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio fuera de development")
	}

	return cfg, nil
}

// splitExtensions normaliza la lista "jpg,.png, PDF" a [".jpg", ".png", ".pdf"].
func splitExtensions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

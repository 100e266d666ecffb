// internal/config/model.go
//
// Typed configuration model for the Scânteia backend.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from four overlay layers:
//
//   • built-in defaults                       – see defaults.go,
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `SCANTEIA_`-prefixed environment        – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs, only plain strings.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Durations accept Go syntax ("72h", "30m").

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr    string   `koanf:"listen_addr"     validate:"required,hostname_port"`
	ForceHTTPS    bool     `koanf:"force_https"`
	PublicBaseURL string   `koanf:"public_base_url" validate:"omitempty,url"`
	CORSOrigins   []string `koanf:"cors_origins"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The DSN stays in YAML so operators can tweak host, port, or flags
// without touching Vault.  Password, when set, overrides whatever the DSN
// carries and is normally a `vault:` reference.
type Database struct {
	DSN          string        `koanf:"dsn"            validate:"required"`
	Password     string        `koanf:"password"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int           `koanf:"max_idle_conns" validate:"gte=0"`
	Retries      int           `koanf:"retries"        validate:"gte=0"`
	RetryBackoff time.Duration `koanf:"retry_backoff"`
}

//
// Log section
//

// Log controls the zap file sink.  Dir is relative to Paths.Root unless
// absolute.
type Log struct {
	Dir   string `koanf:"dir"   validate:"required"`
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

//
// Site section
//

// Site configures host lookup and the in-memory content cache.
type Site struct {
	LocalhostAlias string        `koanf:"localhost_alias"`
	CacheTTL       time.Duration `koanf:"cache_ttl"       validate:"gt=0"`
	IdleTTL        time.Duration `koanf:"idle_ttl"        validate:"gt=0"`
}

//
// Mail section
//

// Mail selects the outbound mail backend.  "smtp" falls back to "log"
// when no credentials are present, matching local development setups.
type Mail struct {
	Backend  string        `koanf:"backend"  validate:"oneof=smtp log"`
	Host     string        `koanf:"host"     validate:"required_if=Backend smtp"`
	Port     int           `koanf:"port"     validate:"gte=0,lte=65535"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
	From     string        `koanf:"from"     validate:"required,email"`
	Timeout  time.Duration `koanf:"timeout"`
}

//
// Membership section
//

// Membership configures the application intake pipeline.  NotifyTo may be
// empty; submissions then fail with an Unconfigured server error.
type Membership struct {
	NotifyTo    string `koanf:"notify_to"     validate:"omitempty,email"`
	MinChildAge int    `koanf:"min_child_age" validate:"gte=0"`
	TimeZone    string `koanf:"time_zone"` // stamps in the office mail
}

//
// Newsletter section
//

// Newsletter configures the double opt-in flow.
type Newsletter struct {
	ConfirmTTL time.Duration `koanf:"confirm_ttl" validate:"gt=0"`
}

//
// Media section
//

// Media selects how image references become URLs.
type Media struct {
	Backend    string        `koanf:"backend"     validate:"oneof=public s3"`
	BaseURL    string        `koanf:"base_url"`
	S3Bucket   string        `koanf:"s3_bucket"   validate:"required_if=Backend s3"`
	S3Region   string        `koanf:"s3_region"`
	PresignTTL time.Duration `koanf:"presign_ttl"`
}

//
// Geo section
//

// Geo points at an optional GeoLite2-City database.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // SCANTEIA_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP       HTTP       `koanf:"http"`
	Database   Database   `koanf:"database"`
	Log        Log        `koanf:"log"`
	Site       Site       `koanf:"site"`
	Mail       Mail       `koanf:"mail"`
	Membership Membership `koanf:"membership"`
	Newsletter Newsletter `koanf:"newsletter"`
	Media      Media      `koanf:"media"`
	Geo        Geo        `koanf:"geo"`
	Paths      Paths      `koanf:"-"`
}

// internal/config/model.go
//
// Typed configuration model for wp-cookie.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                        – dotenv values,
//   • `conf/global.yaml`                     – primary static file,
//   • `WPC_`-prefixed environment overrides  – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so secret material
// such as the site-table DB password never lives in flat files.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Site section
//

// Site describes the deployment the cookie layer serves.  NetworkURL
// falls back to URL when empty, which is also the single-site case.
type Site struct {
	URL        string `koanf:"url"         validate:"required,url"`
	NetworkURL string `koanf:"network_url" validate:"omitempty,url"`
	Multisite  bool   `koanf:"multisite"`
}

//
// Cookie section
//

// Cookie holds the layer's own tunables.  Debug gates per-operation
// logging; everything else is fixed policy (SameSite=Strict, HttpOnly).
type Cookie struct {
	Debug bool `koanf:"debug"`
}

//
// Database section (multisite only)
//

// Database configures the optional `site` table used to resolve
// per-host site records in multisite mode.  Both fields may stay empty
// on single-site installs; the resolver then works from Site alone.
//
// The *template* (`SiteDSN`) is kept in YAML so operators can tweak
// host, port, or flags without touching Vault; it carries one %s verb
// for the secret portion.  The *secret* (`SitePassword`) may be a
// `vault:` reference, keeping credentials out of flat files and git
// history.
type Database struct {
	SiteDSN      string `koanf:"site_dsn"`
	SitePassword string `koanf:"site_password"` // may be a vault: reference
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or WPC_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // WPC_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Site     Site     `koanf:"site"`
	Cookie   Cookie   `koanf:"cookie"`
	Database Database `koanf:"database"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}

// internal/vault/vault.go
//
// Vault client wrapper for wp-cookie.
//
// Context
// -------
//   - Thin, concurrency-safe wrapper around the HashiCorp Vault Go SDK,
//     used by internal/config to resolve `vault:` references (today only
//     the site-table DB password).
//   - Adds simple KV-v2 helpers and per-key caching.  The caller decides
//     when to refresh by constructing a fresh client; config reloads are
//     rare enough that token renewal loops are not carried here.
//
// Public workflow
// ---------------
//  1. ref, ok := vault.ParseRef(raw)                // "vault:secret/db#password"
//  2. cli, err := vault.New(ctx, log.Printf)        // during boot.
//  3. pw,  err := cli.GetKV(ctx, ref.Path, ref.Key) // anywhere in the app.
//
// Build tags: none.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	vault "github.com/hashicorp/vault/api"
)

//
// SECTION 1.  References
//

// refPrefix marks a config value as a Vault KV-v2 reference.
const refPrefix = "vault:"

// Ref addresses one key inside a KV-v2 secret.
type Ref struct {
	Path string // e.g. "secret/wp-cookie/db"
	Key  string // e.g. "password"
}

// ParseRef recognizes "vault:<path>#<key>" strings.  ok is false for
// plain values, which callers use verbatim.
func ParseRef(s string) (Ref, bool) {
	if !strings.HasPrefix(s, refPrefix) {
		return Ref{}, false
	}
	rest := strings.TrimPrefix(s, refPrefix)
	path, key, found := strings.Cut(rest, "#")
	if !found || path == "" || key == "" {
		return Ref{}, false
	}
	return Ref{Path: path, Key: key}, true
}

//
// SECTION 2.  Client
//

// Client is safe for concurrent use.  Create once at startup and pass
// it to whoever resolves references.  Zero value is invalid.
type Client struct {
	api   *vault.Client
	logFn func(string, ...any)

	cacheMu sync.RWMutex
	cache   map[string]string // canonical path#key → value
}

// New constructs a Vault client from the standard environment.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
func New(ctx context.Context, logFn func(string, ...any)) (*Client, error) {
	if logFn == nil {
		logFn = func(string, ...any) {}
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{
		api:   apiCli,
		logFn: logFn,
		cache: make(map[string]string),
	}, nil
}

// GetKV fetches a single key from a KV-v2 secret.  Results are cached
// for the lifetime of the Client, which matches one config load.
func (c *Client) GetKV(ctx context.Context, secretPath, key string) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	c.cacheMu.RLock()
	if v, ok := c.cache[canonical]; ok {
		c.cacheMu.RUnlock()
		return v, nil
	}
	c.cacheMu.RUnlock()

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}

	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	c.cacheMu.Lock()
	c.cache[canonical] = sval
	c.cacheMu.Unlock()

	c.logFn("vault: resolved %s", canonical)
	return sval, nil
}

//
// SECTION 3.  Helpers
//

func splitMount(p string) (mount, rel string) {
	if p == "" {
		return "", ""
	}
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return
}

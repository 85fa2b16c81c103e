package config

import (
	"os"
	"strings"
)

// User is a statically configured account. PassHash is bcrypt.
type User struct {
	Name     string
	PassHash string
	Role     string // "teacher" | "admin"
	Org      string
}

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt
	// Users come from AUTH_USERS: "name:bcrypt:role:org" entries, comma
	// separated. The admin account above is always present on top.
	Users []User

	DefaultOrgID string

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:      addr,
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		BlobBasePath:  envOr("BLOB_BASE_PATH", "./data"),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		Users:         parseUsers(os.Getenv("AUTH_USERS")),
		DefaultOrgID:  envOr("DEFAULT_ORG_ID", "default"),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func parseUsers(raw string) []User {
	if raw == "" {
		return nil
	}
	var out []User
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 4 || parts[0] == "" {
			continue
		}
		out = append(out, User{Name: parts[0], PassHash: parts[1], Role: parts[2], Org: parts[3]})
	}
	return out
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Package config handles configuration loading for the studio server.
//
// Configuration is loaded from a YAML file with environment variable
// expansion (${VAR_NAME}) and Go duration-string parsing. Load() applies
// defaults and validates required fields.
//
// Default file locations (in order):
//
//  1. Path from the STUDIO_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/studio/server.yaml
//  3. ~/.config/studio/server.yaml
//
// A complete configuration:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
//	database:
//	  path: "/var/lib/studio/studio.db"
//
//	auth:
//	  jwt_secret: "${STUDIO_JWT_SECRET}"
//	  admin_username: "admin"
//	  admin_password_hash: "$2a$10$..."   # studio hash-password
//	  token_ttl: "24h"
//
//	cors:
//	  allowed_origins: ["https://studio.example.com"]
//
//	mail:
//	  resend_api_key: "${RESEND_API_KEY}"   # empty disables notifications
//	  from: "onboarding@resend.dev"
//	  to: "inbox@studio.example.com"
//
//	tailscale:
//	  enabled: false
//	  hostname: "studio"
//	  auth_key: "${TS_AUTHKEY}"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
//	metrics:
//	  enabled: true
//	  path: "/metrics"
package config

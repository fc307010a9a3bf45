// Package auth provides authentication and authorization for the studio server.
//
// # Authentication
//
// A single administrator is provisioned at deployment time with a username
// and a bcrypt password digest (see Credentials). Login verification is
// constant-time over both username and password, so failures never reveal
// which credential was wrong.
//
// # Session Tokens
//
// Successful login issues an HS256 JWT signed with the configured secret:
//
//	token, err := verifier.Generate(username, ttl)
//	subject, err := verifier.Verify(token)
//
// Tokens carry sub, iat, and exp claims. Validation is all-or-nothing and
// there is no refresh protocol or server-side revocation; logout is
// client-side token discard.
//
// # The Gateway Middleware
//
// Middleware is the single authorization checkpoint for every protected
// operation. It extracts the bearer token, validates it, and checks the
// subject against the provisioned administrator. All rejection causes
// produce one uniform 401 response so the surface offers no token-guessing
// oracle; the specific cause is logged server-side only.
package auth

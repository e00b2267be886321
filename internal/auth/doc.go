// Package auth implements credentials and access control for the catalog:
// bcrypt password hashing, stateless signed access tokens, the login flow,
// and the Gin middleware that resolves a bearer token to an account.
//
// Tokens are self-contained JWTs signed with a symmetric secret; there is no
// server-side session store and no revocation list. A compromised token stays
// valid until its natural expiry.
package auth

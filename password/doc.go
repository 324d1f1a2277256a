// Package password wraps bcrypt hashing and verification behind a small,
// misuse-resistant pair of operations. Hashing embeds a random salt, so two
// hashes of the same plaintext differ; verification is constant-time and
// treats a malformed stored hash as a mismatch rather than an error.
package password

// Package web serves the storefront's authentication pages: login, signup,
// admin login, logout, and the password-recovery flow. Rendering is delegated
// to a Renderer so the storefront keeps its own template stack; a minimal
// built-in renderer backs the standalone daemon.
package web

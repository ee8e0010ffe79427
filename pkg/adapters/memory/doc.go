// Package memory provides in-process implementations of core.KeyStore and
// core.Repository. Nothing survives the process; it backs tests and embedders
// that bring their own persistence.
package memory

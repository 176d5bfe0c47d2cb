// Package callback normalizes identity-provider callback requests into a
// single canonical redirect target on the application's own host.
//
// Everything in this package is a pure function of its input plus the
// read-only Options the Normalizer was built with, so a Normalizer may be
// shared freely between concurrent requests.
package callback

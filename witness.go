// Package witness holds build metadata shared by the witness-build tooling.
package witness

// Version is the witness-build release version.
const Version = "0.3.0"

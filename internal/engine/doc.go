// Package engine finds CMake build scripts under the requested paths and
// runs the verifier over them. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine

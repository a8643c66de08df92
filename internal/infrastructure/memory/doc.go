// Package memory holds process-local implementations of the repository and
// rate-limit ports. They back STORE_BACKEND=memory and the HTTP tests; data
// does not survive a restart.
package memory

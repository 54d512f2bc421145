package platform

// Package platform contains OS integration helpers: filesystem probes and
// cleanup, standard directory discovery, and revealing files in the system
// file manager.

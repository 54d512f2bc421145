package model

// Package model defines domain data structures used across the app: download
// sessions, progress snapshots, archive entries, and state enums. Structures
// are designed for direct binding in the UI and explicit state transitions.

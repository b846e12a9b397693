// Package workspace manages the scratch directory a publish clones into.
//
// Ephemeral mode creates a fresh directory under the base (tsfile-site-deploy-*) and
// removes it on Cleanup. Persistent mode uses a fixed path that is emptied on
// Create and kept after Cleanup, so the last published tree can be inspected.
package workspace

// Package git publishes a directory tree to a branch of a remote repository, the
// way gh-pages does: clone the branch (or start it orphaned), replace the whole
// tree, commit and push.
package git

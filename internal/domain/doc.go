// Package domain contains the core model for target definitions.
//
// The domain is persistence-agnostic: it does not depend on YAML parsing or the filesystem.
// Infra adapters produce Documents; the merge engine folds them into Records.
package domain

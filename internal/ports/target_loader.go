package ports

import "github.com/o11c/targets/internal/domain"

// TargetLoader resolves a target name into a finalized, validated record.
type TargetLoader interface {
	LoadTarget(name string) (*domain.Record, error)
}

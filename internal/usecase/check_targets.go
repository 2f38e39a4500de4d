package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/o11c/targets/internal/domain"
	"github.com/o11c/targets/internal/ports"
)

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

type CheckTargets struct {
	targets ports.TargetLoader
	log     *slog.Logger
}

type CheckOption func(*CheckTargets)

func WithLogger(l *slog.Logger) CheckOption {
	return func(uc *CheckTargets) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewCheckTargets(tl ports.TargetLoader, opts ...CheckOption) *CheckTargets {
	uc := &CheckTargets{
		targets: tl,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads every named target in order and stops at the first failure.
// Reports for the targets checked before the failure are returned alongside the error.
func (uc *CheckTargets) Execute(ctx context.Context, names []string) ([]domain.TargetReport, error) {
	if len(names) == 0 {
		return nil, domain.NewOpError("usecase.check", domain.KindValidation, "", "", "at least one target is required")
	}

	reports := make([]domain.TargetReport, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		if strings.HasPrefix(name, "-") {
			return reports, domain.NewOpError("usecase.check", domain.KindValidation, name, "",
				"target name %q looks like a flag", name)
		}

		rec, err := uc.targets.LoadTarget(name)
		if err != nil {
			uc.log.Error("target.failed", "target", name, "error", err)
			return reports, fmt.Errorf("target %q: %w", name, err)
		}

		tgt, err := DecodeTarget(rec)
		if err != nil {
			return reports, fmt.Errorf("target %q: %w", name, err)
		}

		if uc.log.Enabled(ctx, slog.LevelDebug) {
			uc.log.Debug("target.record", "target", name, "record", dumper.Sdump(rec.Map()))
		}
		uc.log.Info("target.ok", "target", name, "fields", rec.Len())

		reports = append(reports, domain.TargetReport{
			Requested: name,
			Record:    rec,
			Target:    tgt,
		})
	}

	return reports, nil
}

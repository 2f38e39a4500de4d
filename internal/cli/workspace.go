package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/o11c/targets/internal/domain"
	"github.com/o11c/targets/internal/infra/config"
	"github.com/o11c/targets/internal/infra/workspacefinder"
	"github.com/o11c/targets/internal/infra/yamldoc"
	"github.com/o11c/targets/internal/merge"
	"github.com/o11c/targets/internal/ports"
)

type workspaceCtx struct {
	root  string
	cfg   domain.Config
	store ports.DocumentStore
}

func loadWorkspace() (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	return &workspaceCtx{
		root:  root,
		cfg:   cfg,
		store: yamldoc.NewStore(root),
	}, nil
}

func (ws *workspaceCtx) engine(log *slog.Logger) *merge.Engine {
	return merge.New(ws.store,
		merge.WithBaseDocument(ws.cfg.Documents.Base),
		merge.WithExtension(ws.cfg.Documents.Extension),
		merge.WithLogger(log),
	)
}

// resolveWorkspaceRoot returns the nearest directory holding a workspace config,
// otherwise the working directory.
func resolveWorkspaceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	wd, _ = filepath.Abs(wd)

	locator := workspacefinder.NewFinder(config.FileNames()...)
	if root, err := locator.FindRoot(wd); err == nil && root != "" {
		return root, nil
	}
	return wd, nil
}

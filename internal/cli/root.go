package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/o11c/targets/internal/buildinfo"
	"github.com/o11c/targets/internal/infra/logger"
	"github.com/o11c/targets/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "targets <target>...",
		Short:        "Merge and validate target definition documents",
		Long:         "Resolve each target document with its imports into one record and validate it.\nTargets are document names relative to the workspace root, e.g. triple/x86_64-linux-gnu.",
		SilenceUsage: true,
		Args:         validateTargetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace()
			if err != nil {
				return err
			}

			cleanup, lerr := logger.Setup(logger.Config{
				Root:   ws.root,
				Debug:  ws.cfg.Log.Debug,
				File:   ws.cfg.Log.File,
				Stderr: cmd.ErrOrStderr(),
			})
			if lerr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", lerr)
			}
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			log := logger.L().With("run_id", uuid.NewString())
			log.Debug("run.start", "version", buildinfo.String(), "root", ws.root, "targets", args)

			uc := usecase.NewCheckTargets(ws.engine(log), usecase.WithLogger(log))
			reports, err := uc.Execute(cmd.Context(), args)
			printReports(cmd.OutOrStdout(), reports)
			return err
		},
	}

	return cmd
}

func validateTargetArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("at least one target is required")
	}
	for _, a := range args {
		if strings.TrimSpace(a) == "" {
			return errors.New("empty target name")
		}
		if strings.HasPrefix(a, "-") {
			return fmt.Errorf("target %q must not start with '-'", a)
		}
	}
	return nil
}

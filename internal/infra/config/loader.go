package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/o11c/targets/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config file names, in lookup order.
const (
	YAMLFile = "targets.yaml"
	TOMLFile = "targets.toml"
)

// DebugEnv forces debug logging when set to a true value.
const DebugEnv = "TARGETS_DEBUG"

// FileNames lists the config files that mark a workspace root.
func FileNames() []string { return []string{YAMLFile, TOMLFile} }

// Load reads the workspace config from root and applies it on top of defaults.
// A workspace without a config file gets the defaults.
func Load(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	for _, name := range FileNames() {
		path := filepath.Join(root, name)
		b, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindExecution,
				Path: path,
				Err:  err,
			}
		}

		fc, err := decode(name, b)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindParse,
				Path: path,
				Err:  err,
			}
		}
		if err := apply(&cfg, fc); err != nil {
			return cfg, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindValidation,
				Path: path,
				Err:  err,
			}
		}
		break
	}

	if v, ok := os.LookupEnv(DebugEnv); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Log.Debug = b
		}
	}

	return cfg, nil
}

func decode(name string, b []byte) (fileConfig, error) {
	var fc fileConfig
	if strings.HasSuffix(name, ".toml") {
		md, err := toml.NewDecoder(bytes.NewReader(b)).Decode(&fc)
		if err != nil {
			return fc, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fc, errors.New("unknown key " + strconv.Quote(undecoded[0].String()))
		}
		return fc, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, err
	}
	return fc, nil
}

// apply copies parsed values on top of defaults.
func apply(cfg *domain.Config, fc fileConfig) error {
	if base := strings.TrimSpace(fc.Documents.Base); base != "" {
		if strings.Contains(base, ".") {
			return errors.New("documents.base must be a document name without extension, got " + strconv.Quote(base))
		}
		cfg.Documents.Base = base
	}
	if ext := strings.TrimSpace(fc.Documents.Extension); ext != "" {
		if !strings.HasPrefix(ext, ".") || strings.Contains(ext[1:], ".") || strings.Contains(ext, "/") {
			return errors.New("documents.extension must look like \".yml\", got " + strconv.Quote(ext))
		}
		cfg.Documents.Extension = ext
	}
	if fc.Log.Debug != nil {
		cfg.Log.Debug = *fc.Log.Debug
	}
	cfg.Log.File = strings.TrimSpace(fc.Log.File)
	return nil
}

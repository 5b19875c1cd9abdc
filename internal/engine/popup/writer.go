package popup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// writeArtifacts writes every artifact of bundle below the output directory and
// returns how many files were written.
//
// A missing output directory is not created: nothing is written and no error is
// returned. Below the output directory at most one missing directory level is
// created per artifact.
func (p *Processor) writeArtifacts(bundle domain.Bundle) (int, error) {
	outDir := p.config.OutputPath()

	info, err := os.Stat(outDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn(fmt.Sprintf("output directory %s does not exist, skipping write of %d artifacts", outDir, len(bundle)))
			return 0, nil
		}
		return 0, zerr.With(zerr.Wrap(err, domain.ErrOutputDirStatFailed.Error()), "path", outDir)
	}
	if !info.IsDir() {
		return 0, zerr.With(zerr.New(domain.ErrOutputDirStatFailed.Error()+": not a directory"), "path", outDir)
	}

	written := 0
	for _, artifact := range bundle {
		data, err := artifactContent(artifact)
		if err != nil {
			return written, err
		}
		if err := writeArtifact(outDir, artifact.FileName(), data); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func artifactContent(artifact domain.Artifact) ([]byte, error) {
	switch a := artifact.(type) {
	case domain.CodeChunk:
		return []byte(a.Code), nil
	case domain.AssetChunk:
		return a.Source, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownArtifact, "cannot write artifact"), "type", fmt.Sprintf("%T", artifact))
	}
}

func writeArtifact(outDir, fileName string, data []byte) error {
	target := filepath.FromSlash(fileName)
	if !filepath.IsAbs(target) {
		target = filepath.Join(outDir, target)
	}

	dir := filepath.Dir(target)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		// Single level only; deeper missing parents fail here.
		if err := os.Mkdir(dir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", dir)
		}
	}

	//nolint:gosec // Path is built from the configured output directory and engine file names
	if err := os.WriteFile(target, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", target)
	}
	return nil
}

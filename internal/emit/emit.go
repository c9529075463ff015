// Package emit writes the configuration file read by the m.css documentation
// generator.
package emit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/doxconf/internal/config"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/navbar"
)

const header = "# Generated by doxconf from %s. Do not edit.\n\n"

// Write renders the host configuration for cfg. source names the doxconf file
// it came from and only appears in the header comment.
func Write(w io.Writer, cfg *config.Config, source string) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, header, source)
	fmt.Fprintf(&b, "DOXYFILE = %s\n\n", navbar.Quote(cfg.Doxyfile))
	if err := cfg.Navbar.WriteMCSS(&b); err != nil {
		return err
	}
	_, err := w.Write(b.Bytes())
	return err
}

// WriteFile renders into path. The file is replaced atomically so a generator
// started concurrently never reads a half-written configuration.
func WriteFile(path string, cfg *config.Config, source string) error {
	var b bytes.Buffer
	if err := Write(&b, cfg, source); err != nil {
		return ferrors.InternalError("failed to render host configuration").WithCause(err).Build()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".doxconf-*.tmp")
	if err != nil {
		return fsError("failed to create temporary file", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b.Bytes()); err != nil {
		_ = tmp.Close()
		return fsError("failed to write host configuration", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fsError("failed to write host configuration", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fsError("failed to set permissions", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fsError("failed to replace host configuration", path, err)
	}
	return nil
}

func fsError(msg, path string, err error) error {
	return ferrors.FileSystemError(msg).WithCause(err).WithContext("path", path).Build()
}

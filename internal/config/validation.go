package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
)

// Validate checks the configuration. Navbar targets are deliberately not
// checked: only the documentation generator knows which pages exist.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Doxyfile) == "" {
		return ferrors.ValidationError("doxyfile must not be empty").Build()
	}
	if _, err := logLevelNormalizer.Parse(c.Logging.Level); err != nil {
		return ferrors.ValidationError("invalid logging level").WithCause(err).Build()
	}
	if _, err := logFormatNormalizer.Parse(c.Logging.Format); err != nil {
		return ferrors.ValidationError("invalid logging format").WithCause(err).Build()
	}
	if _, err := c.RuleSet(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Host.Command) == "" {
		return ferrors.ValidationError("host command must not be empty").Build()
	}
	if strings.TrimSpace(c.Output.ConfFile) == "" {
		return ferrors.ValidationError("output conf_file must not be empty").Build()
	}
	return nil
}

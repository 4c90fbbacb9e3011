package config

import (
	"errors"
	"fmt"
	"strings"
)

// excel forbids these in sheet names
const invalidSheetChars = `:\/?*[]`

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.Server.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("server.timeout_seconds must not be negative"))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format))
	}
	if c.Logging.Output.File.Enabled && c.Logging.Output.File.Path == "" {
		errs = append(errs, errors.New("logging.output.file.path is required when file output is enabled"))
	}
	if c.Logging.Output.Loki.Enabled && c.Logging.Output.Loki.Endpoint == "" {
		errs = append(errs, errors.New("logging.output.loki.endpoint is required when loki output is enabled"))
	}

	if c.Email.Enabled && (c.Email.From == "" || c.Email.SMTP.Host == "") {
		errs = append(errs, errors.New("email.from and email.smtp.host are required when email is enabled"))
	}

	if c.Assessment.SessionTTLMinutes < 0 {
		errs = append(errs, errors.New("assessment.session_ttl_minutes must not be negative"))
	}
	if c.Assessment.MaxSessions < 0 {
		errs = append(errs, errors.New("assessment.max_sessions must not be negative"))
	}

	for key, name := range map[string]string{
		"export.ledger_sheet": c.Export.LedgerSheet,
		"export.items_sheet":  c.Export.ItemsSheet,
	} {
		if err := validSheetName(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if c.Export.LedgerSheet != "" && strings.EqualFold(c.Export.LedgerSheet, c.Export.ItemsSheet) {
		errs = append(errs, errors.New("export.ledger_sheet and export.items_sheet must differ"))
	}

	return errors.Join(errs...)
}

func validSheetName(name string) error {
	if name == "" {
		return nil
	}
	if len([]rune(name)) > 31 {
		return fmt.Errorf("sheet name %q is longer than 31 characters", name)
	}
	if strings.ContainsAny(name, invalidSheetChars) {
		return fmt.Errorf("sheet name %q contains one of %s", name, invalidSheetChars)
	}
	return nil
}

package email

import (
	"fmt"
	"strings"
)

// LedgerExportData describes a workbook mailed to a school or assessor.
type LedgerExportData struct {
	AppName     string
	Institution string
	Rows        int
	FileName    string
	ContentType string
	Workbook    []byte
}

// BuildLedgerExportEmail wraps an exported ledger workbook in a message.
func BuildLedgerExportEmail(to []string, data LedgerExportData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Angket PDBK"
	}

	subject := fmt.Sprintf("%s - rekap %d peserta didik", appName, data.Rows)
	if inst := strings.TrimSpace(data.Institution); inst != "" {
		subject += " (" + inst + ")"
	}

	text := fmt.Sprintf(`Terlampir rekap hasil angket untuk %d peserta didik.

File: %s

-- 
%s
`, data.Rows, data.FileName, appName)

	return Message{
		To:       to,
		Subject:  subject,
		TextBody: text,
		Attachments: []Attachment{{
			Filename:    data.FileName,
			ContentType: data.ContentType,
			Data:        data.Workbook,
		}},
	}
}

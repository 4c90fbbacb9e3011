package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "ANGKET"

	ServiceName = "angket_backend"

	// MIMEXLSX is the content type of an OOXML workbook.
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrCatalogUnavailable       = "catalog disabled (set catalog.enabled in the config)"
	ErrKeyRequired              = "--key is required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoSamplesRecorded        = "No samples saved yet."
	MsgCopiedToClipboard        = "Path copied to clipboard."
)

// Listing layout
const (
	nameColumnWidth    = 28
	packageColumnWidth = 32
	ageColumnWidth     = 16
)

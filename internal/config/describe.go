package config

import "raspview/internal/structs"

// Describe lists the settings for the /config endpoint. The forward URL is
// reported as set or unset only, since it may carry credentials.
func Describe(s *Settings) structs.SettingsView {
	forward := "disabled"
	if s.LogForwardURL != "" {
		forward = "enabled"
	}

	return structs.SettingsView{Fields: []structs.Element{
		{
			Label:     "Log Viewer",
			Type:      structs.Info,
			Rationale: "Displays events written by the RASP extension as a table. The log file is only ever read.",
		}, {
			Label:     "Log File",
			Type:      structs.Text,
			Key:       KeyLogFile,
			Rationale: "Absolute path of the line-delimited JSON file written by the RASP logger.",
			Value:     s.LogFile,
			Required:  true,
		}, {
			Label:     "Listen Address",
			Type:      structs.Text,
			Key:       KeyListenAddr,
			Rationale: "Address the HTTP server binds to, in the form host:port.",
			Value:     s.ListenAddr,
			Required:  true,
		}, {
			Label:     "Log Level",
			Type:      structs.Select,
			Key:       KeyLogLevel,
			Rationale: "Verbosity of the viewer's own logs.",
			Value:     s.LogLevel,
			Required:  true,
		}, {
			Label:     "Log Forwarding",
			Type:      structs.Info,
			Key:       KeyLogForwardURL,
			Rationale: "Warnings and errors are posted to a collector when a URL is configured.",
			Value:     forward,
		}, {
			Label:     "Read Timeout",
			Type:      structs.Number,
			Key:       KeyReadTimeout,
			Rationale: "Upper bound on reading one request, file read included.",
			Value:     s.ReadTimeout.String(),
			Required:  true,
		},
	}}
}

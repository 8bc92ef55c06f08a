package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags.
var (
	Version   = "2.1.0"
	AppName   = "HarvestHub"
	BuildDate = "unknown"
)

type Info struct {
	AppName    string `json:"app_name"`
	Version    string `json:"version"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	APIVersion string `json:"api_version"`
}

// GetInfo returns the build identity served by the version endpoint.
func GetInfo(apiVersion string) Info {
	return Info{
		AppName:    AppName,
		Version:    Version,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		APIVersion: apiVersion,
	}
}

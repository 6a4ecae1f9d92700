package klarna

import "fmt"

// Supported regions and modes.
const (
	RegionEU = "eu"
	RegionNA = "na"
	RegionOC = "oc"

	ModeLive = "live"
	ModeTest = "test"
)

var baseURLs = map[string]map[string]string{
	RegionEU: {
		ModeLive: "https://api.klarna.com",
		ModeTest: "https://api.playground.klarna.com",
	},
	RegionNA: {
		ModeLive: "https://api-na.klarna.com",
		ModeTest: "https://api-na.playground.klarna.com",
	},
	RegionOC: {
		ModeLive: "https://api-oc.klarna.com",
		ModeTest: "https://api-oc.playground.klarna.com",
	},
}

// BaseURL returns API base URL for region and mode.
func BaseURL(region, mode string) (string, error) {
	modes, ok := baseURLs[region]
	if !ok {
		return "", fmt.Errorf("unknown klarna region %q", region)
	}
	u, ok := modes[mode]
	if !ok {
		return "", fmt.Errorf("unknown klarna mode %q", mode)
	}
	return u, nil
}

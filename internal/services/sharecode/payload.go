package sharecode

// shareDataV1 is the version-1 wire payload. Field names are single
// letters because the payload rides inside a URL fragment; everything
// except package keys is carried as stable ids. Package keys stay raw
// strings: the software catalog churns far faster than the fixed
// enumerations, and an unmatched string degrades gracefully at the
// caller instead of silently renumbering.
//
// Adding version 2 means a new struct and a new decoder, never edits
// here. Every field is optional so tokens stay minimal.
type shareDataV1 struct {
	V               int      `json:"v"`
	CPU             *int     `json:"c,omitempty"`
	GPU             *int     `json:"g,omitempty"`
	DNS             *int     `json:"d,omitempty"`
	Peripherals     []int    `json:"p,omitempty"`
	MonitorSoftware []int    `json:"m,omitempty"`
	Optimizations   []int    `json:"o,omitempty"`
	Packages        []string `json:"s,omitempty"`
	Preset          *int     `json:"r,omitempty"`
}

package model

// Weather is the condensed weather snapshot served to the dashboard tile.
type Weather struct {
	Location  string  `json:"location,omitempty"`
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
	Fallback  bool    `json:"fallback,omitempty"`
}

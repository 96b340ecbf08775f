package reference

// Image describes a picture that can be shown next to a record.
type Image struct {
	URL    string `yaml:"url" json:"url" validate:"required"`
	Width  int    `yaml:"width" json:"width,omitempty" validate:"gte=0"`
	Height int    `yaml:"height" json:"height,omitempty" validate:"gte=0"`
	Credit string `yaml:"credit" json:"credit,omitempty"`
}

// Airline is a carrier entry
type Airline struct {
	Code       string  `yaml:"code" json:"code" validate:"required"`
	ICAO       string  `yaml:"icao" json:"icao,omitempty"`
	Name       string  `yaml:"name" json:"name" validate:"required"`
	OnTimeRate float64 `yaml:"onTimeRate" json:"onTimeRate,omitempty" validate:"gte=0,lte=100"`
	Rating     float64 `yaml:"rating" json:"rating,omitempty" validate:"gte=0,lte=5"`
	Logo       *Image  `yaml:"logo" json:"logo,omitempty" validate:"omitempty"`
}

// Aircraft is an aircraft type entry keyed by its ICAO type designator
type Aircraft struct {
	Code         string `yaml:"code" json:"code" validate:"required"`
	Name         string `yaml:"name" json:"name" validate:"required"`
	Manufacturer string `yaml:"manufacturer" json:"manufacturer,omitempty"`
	Capacity     int    `yaml:"capacity" json:"capacity,omitempty" validate:"gte=0"`
	RangeKm      int    `yaml:"rangeKm" json:"rangeKm,omitempty" validate:"gte=0"`
	Image        *Image `yaml:"image" json:"image,omitempty" validate:"omitempty"`
}

// Airport is an airport entry keyed by its IATA code
type Airport struct {
	Code      string   `yaml:"code" json:"code" validate:"required,len=3"`
	ICAO      string   `yaml:"icao" json:"icao,omitempty"`
	Name      string   `yaml:"name" json:"name" validate:"required"`
	City      string   `yaml:"city" json:"city" validate:"required"`
	Country   string   `yaml:"country" json:"country"`
	Latitude  float64  `yaml:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Longitude float64  `yaml:"lon" json:"lon" validate:"gte=-180,lte=180"`
	Terminals []string `yaml:"terminals" json:"terminals,omitempty"`
}

// HasCoordinates reports whether the airport carries a usable position.
func (a Airport) HasCoordinates() bool {
	return a.Latitude != 0 || a.Longitude != 0
}

// Tables is the on-disk shape of the reference dataset.
type Tables struct {
	Airlines []Airline  `yaml:"airlines" validate:"dive"`
	Aircraft []Aircraft `yaml:"aircraft" validate:"dive"`
	Airports []Airport  `yaml:"airports" validate:"dive"`
}

// Match reports which resolution rule produced a result.
type Match int

const (
	MatchNone Match = iota
	MatchCode
	MatchName
	MatchSubstring
)

func (m Match) String() string {
	switch m {
	case MatchCode:
		return "code"
	case MatchName:
		return "name"
	case MatchSubstring:
		return "substring"
	default:
		return "none"
	}
}

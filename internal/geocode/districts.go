package geocode

// cityCenter is the approximate center coordinate of a city
// whose postcode districts appear in the district table.
type cityCenter struct {
	Lat float64
	Lon float64
}

// districtCenters maps known central postcode districts to the
// city center they sit in. Used when the input is too coarse for
// the postcode APIs, e.g. a bare "B1". Coordinates are city
// centers, not district centroids.
var districtCenters = map[string]cityCenter{
	// London
	"EC1": {51.5246, -0.0980},
	"WC1": {51.5246, -0.1226},
	"E1":  {51.5175, -0.0597},
	"N1":  {51.5380, -0.0991},
	"SE1": {51.5010, -0.0920},
	"SW1": {51.4975, -0.1357},
	"W1":  {51.5145, -0.1447},
	"NW1": {51.5320, -0.1437},

	// Birmingham
	"B1": {52.4796, -1.9026},
	"B2": {52.4790, -1.8980},
	"B3": {52.4820, -1.9030},

	// Manchester
	"M1": {53.4776, -2.2343},
	"M2": {53.4808, -2.2426},
	"M3": {53.4839, -2.2520},

	// Leeds
	"LS1": {53.7985, -1.5491},
	"LS2": {53.8021, -1.5441},

	// Liverpool
	"L1": {53.4031, -2.9809},
	"L2": {53.4074, -2.9903},

	// Sheffield
	"S1": {53.3789, -1.4703},

	// Bristol
	"BS1": {51.4536, -2.5915},

	// Nottingham
	"NG1": {52.9536, -1.1486},

	// Newcastle
	"NE1": {54.9714, -1.6129},
}

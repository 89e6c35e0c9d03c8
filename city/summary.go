package city

import (
	"fmt"

	"citybuilder/components"
)

// Summary is a snapshot of the city ledger
type Summary struct {
	Day            int     `json:"day"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Funds          float64 `json:"funds"`
	Earnings       float64 `json:"earnings"`
	Population     float64 `json:"population"`
	Homeless       float64 `json:"homeless"`
	Employable     float64 `json:"employable"`
	Unemployed     float64 `json:"unemployed"`
	ResidentialTax float64 `json:"residentialTax"`
	CommercialTax  float64 `json:"commercialTax"`
	IndustrialTax  float64 `json:"industrialTax"`
	Regions        int     `json:"regions"`

	Zones map[string]int `json:"zones"`
}

// Summary returns a snapshot of the ledger and zone counts
func (c *City) Summary() Summary {
	return Summary{
		Day:            c.Day,
		Width:          c.Map.Width,
		Height:         c.Map.Height,
		Funds:          c.Funds,
		Earnings:       c.Earnings,
		Population:     c.Population,
		Homeless:       c.Homeless(),
		Employable:     c.Employable,
		Unemployed:     c.Unemployed(),
		ResidentialTax: c.ResidentialTax,
		CommercialTax:  c.CommercialTax,
		IndustrialTax:  c.IndustrialTax,
		Regions:        c.Map.NumRegions[0] - 1,
		Zones: map[string]int{
			components.KeyResidential: c.Map.CountType(components.TileResidential),
			components.KeyCommercial:  c.Map.CountType(components.TileCommercial),
			components.KeyIndustrial:  c.Map.CountType(components.TileIndustrial),
			components.KeyRoad:        c.Map.CountType(components.TileRoad),
		},
	}
}

// InfoLabels returns the info bar entries: day, funds, population with
// homeless, employable with unemployed.
func (s Summary) InfoLabels() []string {
	return []string{
		fmt.Sprintf("Day: %d", s.Day),
		fmt.Sprintf("$%d", int64(s.Funds)),
		fmt.Sprintf("%d (%d)", int64(s.Population), int64(s.Homeless)),
		fmt.Sprintf("%d (%d)", int64(s.Employable), int64(s.Unemployed)),
	}
}

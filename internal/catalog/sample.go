// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "github.com/meshintel/carbonsite/pkg/types"

// SampleSites returns the built-in demo catalog: five European industrial
// clusters with curated attributes. Quality scores (financial viability,
// scalability, infrastructure, regulatory) are directly-supplied 0-100
// values; distances and carbon intensity are refreshed by the enrichment
// stage when it runs.
func SampleSites() []types.Site {
	return []types.Site{
		{
			ID: "DE001", Name: "Ludwigshafen Chemical Park", Country: "DE",
			Region: "Rhineland-Palatinate", Latitude: 49.4811, Longitude: 8.4353,
			FacilityType: "Chemical",
			Description:  "Chemical Valley anchored by BASF with dense CO2 sources and pipeline infrastructure",
			Attributes: map[string]float64{
				types.AttrDistanceToCO2SourceKm: 2.0,
				types.AttrDistanceToOfftakerKm:  8.0,
				types.AttrCarbonIntensity:       381,
				types.AttrPowerPriceEURMWh:      85,
				types.AttrFinancialViability:    94,
				types.AttrScalability:           97,
				types.AttrInfrastructure:        96,
				types.AttrRegulatory:            95,
			},
		},
		{
			ID: "NL001", Name: "Rotterdam Botlek", Country: "NL",
			Region: "South Holland", Latitude: 51.9225, Longitude: 4.4792,
			FacilityType: "Refinery",
			Description:  "Europe's largest port with major refineries and chemical clusters",
			Attributes: map[string]float64{
				types.AttrDistanceToCO2SourceKm: 3.5,
				types.AttrDistanceToOfftakerKm:  5.0,
				types.AttrCarbonIntensity:       328,
				types.AttrPowerPriceEURMWh:      92,
				types.AttrFinancialViability:    92,
				types.AttrScalability:           95,
				types.AttrInfrastructure:        98,
				types.AttrRegulatory:            93,
			},
		},
		{
			ID: "BE001", Name: "Antwerp Industrial Cluster", Country: "BE",
			Region: "Antwerp", Latitude: 51.2194, Longitude: 4.4025,
			FacilityType: "Chemical",
			Description:  "Major chemical hub with strong logistics and EU policy alignment",
			Attributes: map[string]float64{
				types.AttrDistanceToCO2SourceKm: 4.0,
				types.AttrDistanceToOfftakerKm:  7.5,
				types.AttrCarbonIntensity:       167,
				types.AttrPowerPriceEURMWh:      89,
				types.AttrFinancialViability:    90,
				types.AttrScalability:           93,
				types.AttrInfrastructure:        94,
				types.AttrRegulatory:            91,
			},
		},
		{
			ID: "FR001", Name: "Le Havre Port Zone", Country: "FR",
			Region: "Normandy", Latitude: 49.4944, Longitude: 0.1079,
			FacilityType: "Refinery",
			Description:  "Strategic Normandy location with nuclear-heavy grid and industrial zones",
			Attributes: map[string]float64{
				types.AttrDistanceToCO2SourceKm: 9.0,
				types.AttrDistanceToOfftakerKm:  22.0,
				types.AttrCarbonIntensity:       56,
				types.AttrPowerPriceEURMWh:      78,
				types.AttrFinancialViability:    87,
				types.AttrScalability:           90,
				types.AttrInfrastructure:        88,
				types.AttrRegulatory:            89,
			},
		},
		{
			ID: "IT001", Name: "Porto Marghera", Country: "IT",
			Region: "Veneto", Latitude: 45.4371, Longitude: 12.3326,
			FacilityType: "Chemical",
			Description:  "Venetian industrial zone with access to Mediterranean markets",
			Attributes: map[string]float64{
				types.AttrDistanceToCO2SourceKm: 12.0,
				types.AttrDistanceToOfftakerKm:  35.0,
				types.AttrCarbonIntensity:       331,
				types.AttrPowerPriceEURMWh:      95,
				types.AttrFinancialViability:    88,
				types.AttrScalability:           86,
				types.AttrInfrastructure:        85,
				types.AttrRegulatory:            87,
			},
		},
	}
}

// SampleCO2Sources returns the built-in CO₂ emitter dataset used by the
// distance enricher. Volumes are reported tons per year.
func SampleCO2Sources() []types.CO2Source {
	return []types.CO2Source{
		{Name: "BASF Ludwigshafen", Latitude: 49.4811, Longitude: 8.4353, FacilityType: "Chemical", AnnualCO2Tons: 3200000},
		{Name: "Shell Pernis Refinery", Latitude: 51.8850, Longitude: 4.3870, FacilityType: "Refinery", AnnualCO2Tons: 2800000},
		{Name: "Total Antwerp", Latitude: 51.2310, Longitude: 4.3560, FacilityType: "Refinery", AnnualCO2Tons: 2100000},
		{Name: "ArcelorMittal Dunkirk", Latitude: 51.0280, Longitude: 2.2870, FacilityType: "Steel", AnnualCO2Tons: 5400000},
		{Name: "ExxonMobil Notre-Dame-de-Gravenchon", Latitude: 49.4800, Longitude: 0.5800, FacilityType: "Refinery", AnnualCO2Tons: 1900000},
		{Name: "Versalis Porto Marghera", Latitude: 45.4500, Longitude: 12.2500, FacilityType: "Chemical", AnnualCO2Tons: 1200000},
		{Name: "HeidelbergCement Lixhe", Latitude: 50.7510, Longitude: 5.6620, FacilityType: "Cement", AnnualCO2Tons: 1500000},
	}
}

// SampleOfftakers returns the built-in buyer dataset used by the distance
// enricher. Demand is kilotons per year of the purchased product.
func SampleOfftakers() []types.Offtaker {
	return []types.Offtaker{
		{Name: "Covestro Leverkusen", Latitude: 51.0190, Longitude: 6.9870, Product: "carbon monoxide", DemandKtPerYear: 320},
		{Name: "OCI Methanol Rotterdam", Latitude: 51.9440, Longitude: 4.1420, Product: "methanol", DemandKtPerYear: 950},
		{Name: "BASF Verbund Downstream", Latitude: 49.4900, Longitude: 8.4400, Product: "carbon monoxide", DemandKtPerYear: 540},
		{Name: "INEOS Oxide Antwerp", Latitude: 51.2700, Longitude: 4.3100, Product: "methanol", DemandKtPerYear: 410},
		{Name: "Total Carling Chemicals", Latitude: 49.1640, Longitude: 6.7120, Product: "methanol", DemandKtPerYear: 260},
		{Name: "Eni Versalis Ferrara", Latitude: 44.8660, Longitude: 11.6070, Product: "carbon monoxide", DemandKtPerYear: 180},
	}
}

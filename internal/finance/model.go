// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package finance models the economics of a carbon capture and
// utilization pilot: CAPEX and OPEX structure, revenue streams, cash
// flow projection, and the headline metrics (NPV, IRR, payback).
package finance

import (
	"fmt"
	"math"

	"github.com/meshintel/carbonsite/pkg/types"
)

// CAPEX factors as fractions of equipment cost.
const (
	InstallationFactor = 0.15
	EngineeringFactor  = 0.10
	ContingencyFactor  = 0.20
)

// OPEX factors as fractions of total CAPEX per year.
const (
	MaintenanceFactor = 0.03
	InsuranceFactor   = 0.01
)

// rampUpFactor is the share of full capacity reached during ramp-up years.
const rampUpFactor = 0.5

// Parameters describes one pilot project. DefaultParameters fills the
// conventional assumptions; callers override fields as needed.
type Parameters struct {
	ProjectName string
	SiteName    string

	// CO2InputTPY and COOutputTPY are annual capacities in tons.
	CO2InputTPY float64
	COOutputTPY float64

	LifetimeYears     int
	ConstructionYears int
	RampUpYears       int

	// DiscountRate is the WACC used for discounting.
	DiscountRate float64

	// ETSPriceEURTon values avoided emissions; CarbonCreditPriceEURTon
	// values voluntary credits. Both default to the current EU ETS level.
	ETSPriceEURTon          float64
	CarbonCreditPriceEURTon float64
}

// DefaultParameters returns pilot parameters with conventional
// assumptions: 20-year lifetime, 2-year build, 1-year ramp-up, 10% WACC.
func DefaultParameters(project, site string, co2InputTPY, coOutputTPY float64) Parameters {
	return Parameters{
		ProjectName:             project,
		SiteName:                site,
		CO2InputTPY:             co2InputTPY,
		COOutputTPY:             coOutputTPY,
		LifetimeYears:           20,
		ConstructionYears:       2,
		RampUpYears:             1,
		DiscountRate:            0.10,
		ETSPriceEURTon:          85.0,
		CarbonCreditPriceEURTon: 85.0,
	}
}

func (p Parameters) validate() error {
	if p.CO2InputTPY <= 0 || p.COOutputTPY <= 0 {
		return fmt.Errorf("capacities must be positive: co2=%v co=%v", p.CO2InputTPY, p.COOutputTPY)
	}
	if p.ConstructionYears < 1 {
		return fmt.Errorf("construction period must be at least one year")
	}
	if p.LifetimeYears <= p.ConstructionYears+p.RampUpYears {
		return fmt.Errorf("lifetime (%d years) must exceed construction plus ramp-up (%d years)",
			p.LifetimeYears, p.ConstructionYears+p.RampUpYears)
	}
	return nil
}

// CostStructure breaks down capital costs, annual operating costs, and
// annual revenue at full capacity. All amounts are EUR.
type CostStructure struct {
	EquipmentCAPEX    float64 `json:"equipment_capex"`
	InstallationCAPEX float64 `json:"installation_capex"`
	EngineeringCAPEX  float64 `json:"engineering_capex"`
	ContingencyCAPEX  float64 `json:"contingency_capex"`
	TotalCAPEX        float64 `json:"total_capex"`

	ElectricityCost float64 `json:"electricity_cost"`
	WaterCost       float64 `json:"water_cost"`
	LaborCost       float64 `json:"labor_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	InsuranceCost   float64 `json:"insurance_cost"`
	TotalOPEX       float64 `json:"total_opex"`

	COSalesRevenue       float64 `json:"co_sales_revenue"`
	CarbonCreditsRevenue float64 `json:"carbon_credits_revenue"`
	AvoidedETSCosts      float64 `json:"avoided_ets_costs"`
	TotalRevenue         float64 `json:"total_revenue"`
}

// OperatingInputs are the per-unit consumption figures and prices the
// OPEX model needs.
type OperatingInputs struct {
	PowerPriceEURMWh   float64
	PowerMWhPerTonCO   float64
	WaterM3PerTonCO    float64
	WaterPriceEURM3    float64
	LaborHoursPerTonCO float64
	LaborRateEURHour   float64
}

// CashFlow is one projected year.
type CashFlow struct {
	Year       int     `json:"year"`
	Period     string  `json:"period"`
	CAPEX      float64 `json:"capex"`
	OPEX       float64 `json:"opex"`
	Revenue    float64 `json:"revenue"`
	Net        float64 `json:"net_cash_flow"`
	Cumulative float64 `json:"cumulative_cash_flow"`
}

// Metrics are the headline results of one evaluation.
type Metrics struct {
	NPV                float64 `json:"npv_eur"`
	IRRPercent         float64 `json:"irr_percent"`
	PaybackYears       float64 `json:"payback_period_years"`
	ProfitabilityIndex float64 `json:"profitability_index"`
	AnnualROIPercent   float64 `json:"annual_roi_percent"`
	RevenuePerTonCO    float64 `json:"revenue_per_ton_co_eur"`

	TotalCAPEX    float64 `json:"total_capex_eur"`
	AnnualRevenue float64 `json:"annual_revenue_eur"`
	AnnualOPEX    float64 `json:"annual_opex_eur"`
	AnnualProfit  float64 `json:"annual_profit_eur"`
}

// Model evaluates one project. Build one with NewModel, then call
// ComputeCAPEX, ComputeOPEX, and ComputeRevenue in that order.
type Model struct {
	Params Parameters
	Costs  CostStructure

	capexDone   bool
	opexDone    bool
	revenueDone bool
}

// NewModel validates the parameters and returns an empty model.
func NewModel(params Parameters) (*Model, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("invalid project parameters: %w", err)
	}
	return &Model{Params: params}, nil
}

// ComputeCAPEX derives the capital cost structure from the equipment
// cost using the standard installation, engineering, and contingency
// factors.
func (m *Model) ComputeCAPEX(equipmentCost float64) error {
	if equipmentCost <= 0 {
		return fmt.Errorf("equipment cost must be positive, got %v", equipmentCost)
	}
	m.Costs.EquipmentCAPEX = equipmentCost
	m.Costs.InstallationCAPEX = equipmentCost * InstallationFactor
	m.Costs.EngineeringCAPEX = equipmentCost * EngineeringFactor
	m.Costs.ContingencyCAPEX = equipmentCost * ContingencyFactor
	m.Costs.TotalCAPEX = equipmentCost +
		m.Costs.InstallationCAPEX + m.Costs.EngineeringCAPEX + m.Costs.ContingencyCAPEX
	m.capexDone = true
	return nil
}

// ComputeOPEX derives annual operating costs at full capacity.
// Maintenance and insurance scale with CAPEX, so ComputeCAPEX must run
// first.
func (m *Model) ComputeOPEX(in OperatingInputs) error {
	if !m.capexDone {
		return fmt.Errorf("CAPEX must be computed before OPEX")
	}
	m.Costs.ElectricityCost = m.Params.COOutputTPY * in.PowerMWhPerTonCO * in.PowerPriceEURMWh
	m.Costs.WaterCost = m.Params.COOutputTPY * in.WaterM3PerTonCO * in.WaterPriceEURM3
	m.Costs.LaborCost = m.Params.COOutputTPY * in.LaborHoursPerTonCO * in.LaborRateEURHour
	m.Costs.MaintenanceCost = m.Costs.TotalCAPEX * MaintenanceFactor
	m.Costs.InsuranceCost = m.Costs.TotalCAPEX * InsuranceFactor
	m.Costs.TotalOPEX = m.Costs.ElectricityCost + m.Costs.WaterCost + m.Costs.LaborCost +
		m.Costs.MaintenanceCost + m.Costs.InsuranceCost
	m.opexDone = true
	return nil
}

// ComputeRevenue derives annual revenue at full capacity: product
// sales, carbon credits on the full CO₂ input, and avoided ETS
// allowance costs.
func (m *Model) ComputeRevenue(coPriceEURTon float64) error {
	if !m.capexDone {
		return fmt.Errorf("CAPEX must be computed before revenue")
	}
	m.Costs.COSalesRevenue = m.Params.COOutputTPY * coPriceEURTon
	m.Costs.CarbonCreditsRevenue = m.Params.CO2InputTPY * m.Params.CarbonCreditPriceEURTon
	m.Costs.AvoidedETSCosts = m.Params.CO2InputTPY * m.Params.ETSPriceEURTon
	m.Costs.TotalRevenue = m.Costs.COSalesRevenue +
		m.Costs.CarbonCreditsRevenue + m.Costs.AvoidedETSCosts
	m.revenueDone = true
	return nil
}

// CashFlows projects the full lifetime: construction years carry the
// CAPEX split evenly, ramp-up years run at half capacity, remaining
// years at full capacity.
func (m *Model) CashFlows() ([]CashFlow, error) {
	if !m.opexDone || !m.revenueDone {
		return nil, fmt.Errorf("OPEX and revenue must be computed before cash flows")
	}

	flows := make([]CashFlow, 0, m.Params.LifetimeYears)
	cumulative := 0.0
	year := 0

	annualCAPEX := m.Costs.TotalCAPEX / float64(m.Params.ConstructionYears)
	for i := 0; i < m.Params.ConstructionYears; i++ {
		cumulative -= annualCAPEX
		flows = append(flows, CashFlow{
			Year:       year,
			Period:     fmt.Sprintf("Construction %d", i+1),
			CAPEX:      -annualCAPEX,
			Net:        -annualCAPEX,
			Cumulative: cumulative,
		})
		year++
	}

	for i := 0; i < m.Params.RampUpYears; i++ {
		revenue := m.Costs.TotalRevenue * rampUpFactor
		opex := m.Costs.TotalOPEX * rampUpFactor
		net := revenue - opex
		cumulative += net
		flows = append(flows, CashFlow{
			Year:       year,
			Period:     fmt.Sprintf("Ramp-up %d", i+1),
			OPEX:       -opex,
			Revenue:    revenue,
			Net:        net,
			Cumulative: cumulative,
		})
		year++
	}

	operationYears := m.Params.LifetimeYears - m.Params.ConstructionYears - m.Params.RampUpYears
	for i := 0; i < operationYears; i++ {
		net := m.Costs.TotalRevenue - m.Costs.TotalOPEX
		cumulative += net
		flows = append(flows, CashFlow{
			Year:       year,
			Period:     fmt.Sprintf("Operation %d", i+1),
			OPEX:       -m.Costs.TotalOPEX,
			Revenue:    m.Costs.TotalRevenue,
			Net:        net,
			Cumulative: cumulative,
		})
		year++
	}

	return flows, nil
}

// Metrics computes NPV at the configured discount rate, IRR, payback
// period, profitability index, and the annual operating figures.
func (m *Model) Metrics() (Metrics, error) {
	flows, err := m.CashFlows()
	if err != nil {
		return Metrics{}, err
	}

	nets := make([]float64, len(flows))
	for i, f := range flows {
		nets[i] = f.Net
	}

	npv := NPV(m.Params.DiscountRate, nets)
	annualProfit := m.Costs.TotalRevenue - m.Costs.TotalOPEX

	metrics := Metrics{
		NPV:           npv,
		IRRPercent:    IRR(nets) * 100,
		PaybackYears:  payback(flows),
		TotalCAPEX:    m.Costs.TotalCAPEX,
		AnnualRevenue: m.Costs.TotalRevenue,
		AnnualOPEX:    m.Costs.TotalOPEX,
		AnnualProfit:  annualProfit,
	}
	if m.Costs.TotalCAPEX > 0 {
		metrics.ProfitabilityIndex = (npv + m.Costs.TotalCAPEX) / m.Costs.TotalCAPEX
		metrics.AnnualROIPercent = annualProfit / m.Costs.TotalCAPEX * 100
	}
	if m.Params.COOutputTPY > 0 {
		metrics.RevenuePerTonCO = m.Costs.COSalesRevenue / m.Params.COOutputTPY
	}
	return metrics, nil
}

// NPV discounts a series of annual cash flows, with the first element
// at year zero.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for i, f := range flows {
		npv += f / math.Pow(1+rate, float64(i))
	}
	return npv
}

// IRR finds the discount rate where NPV is zero, by bisection over
// [-0.99, 10]. Returns 0 when the cash flows never change sign, so a
// project that never earns (or never spends) reports no return rather
// than a spurious one.
func IRR(flows []float64) float64 {
	lo, hi := -0.99, 10.0
	fLo, fHi := NPV(lo, flows), NPV(hi, flows)
	if fLo*fHi > 0 {
		return 0
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) < 1e-6 {
			return mid
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2
}

// payback returns the first year (counting from project start) where
// cumulative cash flow turns non-negative, or the full lifetime when
// the project never pays back.
func payback(flows []CashFlow) float64 {
	for i, f := range flows {
		if f.Cumulative >= 0 {
			return float64(i)
		}
	}
	return float64(len(flows))
}

// DefaultOperatingInputs returns the consumption figures and utility
// prices assumed for a CO₂-to-CO electrolysis pilot. The power price is
// overridden per site when enrichment fetched a live day-ahead price.
func DefaultOperatingInputs() OperatingInputs {
	return OperatingInputs{
		PowerPriceEURMWh:   75.0,
		PowerMWhPerTonCO:   2.5,
		WaterM3PerTonCO:    5.0,
		WaterPriceEURM3:    2.0,
		LaborHoursPerTonCO: 10.0,
		LaborRateEURHour:   35.0,
	}
}

// Evaluate runs the full model for one candidate site. Equipment cost
// scales linearly with target capacity; the site's enriched power price
// feeds the OPEX model when present. Roughly half the CO₂ input
// converts to CO product.
func Evaluate(site types.Site, cfg types.FinanceConfig, projectType string, targetCapacityTPY float64) (Metrics, error) {
	if targetCapacityTPY <= 0 {
		return Metrics{}, fmt.Errorf("target capacity must be positive, got %v", targetCapacityTPY)
	}

	params := DefaultParameters(projectType, site.Name, targetCapacityTPY, targetCapacityTPY*0.5)
	if cfg.DiscountRate > 0 {
		params.DiscountRate = cfg.DiscountRate
	}

	model, err := NewModel(params)
	if err != nil {
		return Metrics{}, err
	}

	equipmentPer100 := cfg.EquipmentCostPer100TPY
	if equipmentPer100 <= 0 {
		equipmentPer100 = 2_000_000
	}
	if err := model.ComputeCAPEX(targetCapacityTPY / 100 * equipmentPer100); err != nil {
		return Metrics{}, err
	}

	inputs := DefaultOperatingInputs()
	if price, ok := site.Attributes[types.AttrPowerPriceEURMWh]; ok && price > 0 {
		inputs.PowerPriceEURMWh = price
	}
	if err := model.ComputeOPEX(inputs); err != nil {
		return Metrics{}, err
	}

	coPrice := cfg.COPriceEURTon
	if coPrice <= 0 {
		coPrice = 800
	}
	if err := model.ComputeRevenue(coPrice); err != nil {
		return Metrics{}, err
	}

	return model.Metrics()
}

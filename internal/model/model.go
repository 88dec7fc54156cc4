package model

// Level is a severity label shared by ships, KPIs and the fleet as a whole.
type Level string

const (
	LevelCritical Level = "critical"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
)

// SeriesType distinguishes the two chart segments.
type SeriesType string

const (
	SeriesHistorical SeriesType = "historical"
	SeriesPrediction SeriesType = "prediction"
)

// TimeSeriesPoint is a single chart point. Date is formatted as YYYY-MM-DD.
type TimeSeriesPoint struct {
	Date  string     `json:"date"`
	Value float64    `json:"value"`
	Type  SeriesType `json:"type"`
}

// CriticalShip is a ship whose biofouling index is above the alert threshold.
type CriticalShip struct {
	Name          string  `json:"name"`
	Risk          float64 `json:"risk"`
	Level         Level   `json:"level"`
	BioIndex      float64 `json:"bio_index"`
	ExcessPercent float64 `json:"excess_percent"`
}

// DashboardData is the highlight block at the top of the fleet page.
type DashboardData struct {
	FleetAvgRisk       float64        `json:"fleet_avg_risk"`
	CriticalShips      []CriticalShip `json:"critical_ships"`
	TotalExtraFuelTons int            `json:"total_extra_fuel_tons"`
	TotalSavingsUSD    float64        `json:"total_savings_usd"`
	TotalShips         int            `json:"total_ships"`
	RiskLevel          Level          `json:"risk_level"`
}

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

type KPIStatus string

const (
	KPISuccess KPIStatus = "success"
	KPIWarning KPIStatus = "warning"
	KPIError   KPIStatus = "error"
	KPIInfo    KPIStatus = "info"
)

// KPI is one card on the fleet overview. Value is pre-formatted.
type KPI struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit"`
	Trend      Trend     `json:"trend"`
	TrendValue string    `json:"trend_value"`
	Status     KPIStatus `json:"status"`
}

// FleetOverview is the UI model behind the fleet overview page.
type FleetOverview struct {
	TotalShips         int               `json:"total_ships"`
	ActiveShips        int               `json:"active_ships"`
	AverageEfficiency  float64           `json:"average_efficiency"`
	KPIs               []KPI             `json:"kpis"`
	PerformanceHistory []TimeSeriesPoint `json:"performance_history"`
	CriticalShips      []CriticalShip    `json:"critical_ships"`
}

// Ship is the UI model for a fleet member. The backend does not guarantee a
// numeric ID, so ID falls back to the ship name.
type Ship struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IMO   string `json:"imo,omitempty"`
	Class string `json:"ship_class,omitempty"`
	Type  string `json:"ship_type,omitempty"`
}

// PredictionInsight is the UI model for both the current and the legacy
// prediction endpoints.
type PredictionInsight struct {
	ShipID              string            `json:"ship_id"`
	FuelConsumption     float64           `json:"fuel_consumption"`
	BaselineConsumption float64           `json:"baseline_consumption"`
	BiofoulingRisk      float64           `json:"biofouling_risk"`
	Level               Level             `json:"level"`
	AdditionalCostUSD   float64           `json:"additional_cost_usd"`
	AdditionalCO2Tons   float64           `json:"additional_co2_tons"`
	MaintenanceDate     string            `json:"maintenance_date"`
	ChartData           []TimeSeriesPoint `json:"chart_data"`
	// Set only by the enhanced prediction, which reports totals rather than
	// the excess over a clean hull.
	FuelCostUSD      float64  `json:"fuel_cost_usd,omitempty"`
	CO2EmissionsTons float64  `json:"co2_emissions_tons,omitempty"`
	DataSources      []string `json:"data_sources,omitempty"`
}

type SeaConditions struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	SeaState      float64 `json:"sea_state"`
	WaveHeight    float64 `json:"wave_height"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	Temperature   float64 `json:"temperature"`
}

type FuelPrice struct {
	Port           string  `json:"port"`
	FuelType       string  `json:"fuel_type"`
	PriceUSDPerTon float64 `json:"price_usd_per_ton"`
	Currency       string  `json:"currency"`
	LastUpdated    string  `json:"last_updated"`
}

// ScheduledCleaning is the local record of a cleaning the backend accepted.
type ScheduledCleaning struct {
	VesselID     string `json:"vessel_id"`
	ProposedDate string `json:"proposed_date"`
	Priority     string `json:"priority"`
	Reference    string `json:"reference,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Snapshot is the pre-rendered payload served from /api/data.
type Snapshot struct {
	Dashboard   DashboardData `json:"dashboard"`
	Overview    FleetOverview `json:"overview"`
	Ships       []Ship        `json:"ships"`
	APIStatus   string        `json:"api_status"`
	LastUpdated string        `json:"last_updated"`
}

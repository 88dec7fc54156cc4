package model

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// Raw backend shapes. These mirror the external API and are never served to
// the UI directly; the adapter package turns them into the UI models above.

// FleetSummaryV1 is the body of GET /ships/fleet/summary.
type FleetSummaryV1 struct {
	TotalShips             int             `json:"total_ships"`
	TotalEvents            int             `json:"total_events"`
	AvgBioIndex            float64         `json:"avg_bio_index"`
	TotalAdditionalFuel    float64         `json:"total_additional_fuel_tons"`
	TotalAdditionalCostUSD float64         `json:"total_additional_cost_usd"`
	TotalAdditionalCO2     float64         `json:"total_additional_co2_tons"`
	Ships                  []ShipSummaryV1 `json:"ships"`
}

type ShipSummaryV1 struct {
	ShipName          string  `json:"ship_name"`
	TotalEvents       int     `json:"total_events"`
	AvgExcessRatio    float64 `json:"avg_excess_ratio"`
	MaxExcessRatio    float64 `json:"max_excess_ratio"`
	AvgBioIndex       float64 `json:"avg_bio_index"`
	MaxBioIndex       float64 `json:"max_bio_index"`
	TotalBaselineFuel float64 `json:"total_baseline_fuel"`
	TotalRealFuel     float64 `json:"total_real_fuel"`
}

// ShipDetailV1 is the body of GET /ships/{name}/summary.
type ShipDetailV1 struct {
	ShipSummaryV1
	TotalAdditionalCostUSD float64 `json:"total_additional_cost_usd"`
	LastCleaningDate       string  `json:"last_cleaning_date,omitempty"`
	DaysSinceCleaning      *int    `json:"days_since_cleaning,omitempty"`
}

// FlexibleID accepts either a JSON string or a JSON number.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

// ShipListV1 is the body of GET /ships/.
type ShipListV1 struct {
	Total int          `json:"total"`
	Ships []ShipInfoV1 `json:"ships"`
}

type ShipInfoV1 struct {
	ID        FlexibleID `json:"id"`
	Name      string     `json:"name"`
	IMO       string     `json:"imo,omitempty"`
	ShipClass string     `json:"ship_class,omitempty"`
	ShipType  string     `json:"ship_type,omitempty"`
}

// BiofoulingRecordV1 is one event row of GET /reports/biofouling.
type BiofoulingRecordV1 struct {
	ShipName           string  `json:"ship_name"`
	EventDate          string  `json:"event_date"`
	BioIndex           float64 `json:"bio_index"`
	BioClass           string  `json:"bio_class"`
	ExcessRatio        float64 `json:"excess_ratio"`
	AdditionalFuelTons float64 `json:"additional_fuel_tons"`
	AdditionalCostUSD  float64 `json:"additional_cost_usd"`
}

type BiofoulingReportV1 struct {
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
	Records []BiofoulingRecordV1 `json:"records"`
}

// ReportQuery holds the optional filters of GET /reports/biofouling.
// Zero values are omitted from the query string.
type ReportQuery struct {
	ShipName    string
	StartDate   string
	EndDate     string
	MinBioIndex *float64
	BioClass    string
	Limit       int
	Offset      int
}

// Values renders the query in the backend's parameter names.
func (q ReportQuery) Values() url.Values {
	v := url.Values{}
	if q.ShipName != "" {
		v.Set("ship_name", q.ShipName)
	}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	if q.MinBioIndex != nil {
		v.Set("min_bio_index", strconv.FormatFloat(*q.MinBioIndex, 'f', -1, 64))
	}
	if q.BioClass != "" {
		v.Set("bio_class", q.BioClass)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// PredictionRequestV1 is the body of POST /predictions/.
type PredictionRequestV1 struct {
	ShipName          string   `json:"ship_name"`
	Speed             float64  `json:"speed"`
	DurationDays      float64  `json:"duration_days"`
	DaysSinceCleaning int      `json:"days_since_cleaning"`
	Displacement      *float64 `json:"displacement,omitempty"`
	Draft             *float64 `json:"draft,omitempty"`
	SeaState          *float64 `json:"sea_state,omitempty"`
}

type PredictionResponseV1 struct {
	ShipName             string  `json:"ship_name"`
	PredictedConsumption float64 `json:"predicted_consumption"`
	BaselineConsumption  float64 `json:"baseline_consumption"`
	ExcessRatio          float64 `json:"excess_ratio"`
	BioIndex             float64 `json:"bio_index"`
	BioClass             string  `json:"bio_class"`
	AdditionalFuelTons   float64 `json:"additional_fuel_tons"`
	AdditionalCostUSD    float64 `json:"additional_cost_usd"`
	AdditionalCO2Tons    float64 `json:"additional_co2_tons"`
	Timestamp            string  `json:"timestamp"`
}

// ScenarioRequestV0 is the body of the legacy POST /predictions/scenario.
type ScenarioRequestV0 struct {
	ShipID  string  `json:"ship_id"`
	RouteID string  `json:"route_id"`
	Speed   float64 `json:"speed"`
	Days    int     `json:"days"`
}

type ScenarioPointV0 struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type ScenarioResponseV0 struct {
	FuelConsumption float64           `json:"fuel_consumption"`
	BiofoulingRisk  float64           `json:"biofouling_risk"`
	MaintenanceDate string            `json:"maintenance_date"`
	Series          []ScenarioPointV0 `json:"series"`
}

// IntegrationsHealth is passed through as reported by the backend.
type IntegrationsHealth map[string]any

type OceanEnvironment struct {
	Temperature  float64 `json:"temperature"`
	Salinity     float64 `json:"salinity"`
	Density      float64 `json:"density"`
	Chlorophyll  float64 `json:"chlorophyll"`
	WaveHeight   float64 `json:"wave_height"`
	CurrentSpeed float64 `json:"current_speed"`
	Zone         string  `json:"zone"`
	UpdatedAt    string  `json:"updated_at"`
	// Estimated marks typical values served when only the report
	// statistics are reachable.
	Estimated bool `json:"estimated,omitempty"`
}

// SeaConditionsV1 is the envelope of GET /integrations/weather.
type SeaConditionsV1 struct {
	Status   string `json:"status"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Data *struct {
		SeaState       float64 `json:"sea_state"`
		BeaufortScale  float64 `json:"beaufort_scale"`
		WaveHeight     float64 `json:"wave_height"`
		WindSpeed      float64 `json:"wind_speed"`
		WindDirection  float64 `json:"wind_direction"`
		Temperature    float64 `json:"temperature"`
		AirTemperature float64 `json:"air_temperature"`
	} `json:"data"`
}

// FuelPriceV1 is the envelope of GET /integrations/fuel-prices.
type FuelPriceV1 struct {
	Status string `json:"status"`
	Port   string `json:"port"`
	Data   *struct {
		FuelType       string  `json:"fuel_type"`
		PriceUSDPerTon float64 `json:"price_usd_per_ton"`
		Price          float64 `json:"price"`
		Currency       string  `json:"currency"`
		LastUpdated    string  `json:"last_updated"`
	} `json:"data"`
}

type CleaningRecommendation struct {
	VesselID          string  `json:"vessel_id"`
	BiofoulingIndex   float64 `json:"biofouling_index"`
	CleaningUrgency   Level   `json:"cleaning_urgency"`
	RecommendedAction string  `json:"recommended_action,omitempty"`
	EstimatedSavings  float64 `json:"estimated_savings"`
	NextAvailableSlot string  `json:"next_available_slot,omitempty"`
	LastCleaningDate  string  `json:"last_cleaning_date,omitempty"`
	DaysSinceCleaning *int    `json:"days_since_cleaning,omitempty"`
}

type ScheduleCleaningRequest struct {
	ProposedDate string `json:"proposed_date"`
	Priority     string `json:"priority"`
}

// ScheduleCleaningResult is the backend acknowledgement. Reference carries
// whatever booking identifier the backend returns.
type ScheduleCleaningResult struct {
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message,omitempty"`
}

// EnhancedPredictionRequestV1 is the body of POST
// /integrations/predictions/enhanced. The backend enriches it with weather
// and port data before running the model.
type EnhancedPredictionRequestV1 struct {
	VesselID          string   `json:"vessel_id"`
	Speed             float64  `json:"speed"`
	Displacement      float64  `json:"displacement"`
	Draft             float64  `json:"draft"`
	DaysSinceCleaning int      `json:"days_since_cleaning"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	Port              string   `json:"port,omitempty"`
}

type EnhancedPredictionResponseV1 struct {
	PredictedConsumption float64        `json:"predicted_consumption"`
	BiofoulingIndex      float64        `json:"biofouling_index"`
	FuelCostUSD          float64        `json:"fuel_cost_usd"`
	CO2EmissionsTons     float64        `json:"co2_emissions_tons"`
	SeaStateAdjustment   *float64       `json:"sea_state_adjustment,omitempty"`
	BeaufortScale        *float64       `json:"beaufort_scale,omitempty"`
	EnrichedData         map[string]any `json:"enriched_data"`
	DataSources          []string       `json:"data_sources"`
}

// VesselPosition is the last reported position of a vessel, keyed by IMO
// number.
type VesselPosition struct {
	IMO        string   `json:"imo"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Speed      *float64 `json:"speed,omitempty"`
	Heading    *float64 `json:"heading,omitempty"`
	Status     string   `json:"status,omitempty"`
	LastUpdate string   `json:"last_update,omitempty"`
}

type FleetOptimizationRequest struct {
	VesselIDs []string `json:"vessel_ids"`
}

// FleetOptimization is passed through as computed by the backend.
type FleetOptimization map[string]any

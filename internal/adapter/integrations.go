package adapter

import (
	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

const envelopeSuccess = "success"

// SeaConditions unwraps the weather envelope. Missing fields take the same
// defaults the fallback uses.
func SeaConditions(v model.SeaConditionsV1, lat, lon float64) (model.SeaConditions, bool) {
	if v.Status != envelopeSuccess || v.Data == nil {
		return model.SeaConditions{}, false
	}
	out := fallback.SeaConditions(lat, lon)
	if v.Location != nil {
		out.Latitude = v.Location.Latitude
		out.Longitude = v.Location.Longitude
	}
	d := v.Data
	out.SeaState = firstPositive(d.SeaState, d.BeaufortScale, out.SeaState)
	out.WaveHeight = firstPositive(d.WaveHeight, out.WaveHeight)
	out.WindSpeed = firstPositive(d.WindSpeed, out.WindSpeed)
	out.WindDirection = firstPositive(d.WindDirection, out.WindDirection)
	out.Temperature = firstPositive(d.Temperature, d.AirTemperature, out.Temperature)
	return out, true
}

// FuelPrice unwraps the fuel price envelope.
func FuelPrice(v model.FuelPriceV1, def model.FuelPrice) (model.FuelPrice, bool) {
	if v.Status != envelopeSuccess || v.Data == nil {
		return model.FuelPrice{}, false
	}
	out := def
	if v.Port != "" {
		out.Port = v.Port
	}
	d := v.Data
	if d.FuelType != "" {
		out.FuelType = d.FuelType
	}
	out.PriceUSDPerTon = firstPositive(d.PriceUSDPerTon, d.Price, out.PriceUSDPerTon)
	if d.Currency != "" {
		out.Currency = d.Currency
	}
	if d.LastUpdated != "" {
		out.LastUpdated = d.LastUpdated
	}
	return out, true
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// VesselPosition checks the coordinates and fills in the IMO number when the
// backend leaves it out.
func VesselPosition(p model.VesselPosition, imo string) (model.VesselPosition, bool) {
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return model.VesselPosition{}, false
	}
	if p.IMO == "" {
		p.IMO = imo
	}
	return p, true
}

package adapter

import (
	"strings"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// Ships adapts the ship list. An empty list is rejected so the caller falls
// back instead of rendering an empty fleet.
func Ships(list model.ShipListV1) ([]model.Ship, bool) {
	if len(list.Ships) == 0 {
		return nil, false
	}
	out := make([]model.Ship, 0, len(list.Ships))
	for _, s := range list.Ships {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		id := string(s.ID)
		if id == "" {
			id = name
		}
		out = append(out, model.Ship{
			ID:    id,
			Name:  name,
			IMO:   s.IMO,
			Class: s.ShipClass,
			Type:  s.ShipType,
		})
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

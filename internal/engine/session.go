package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/BinPacker/internal/model"
)

// Session pairs a Packer with the requests that were fed to it, so that
// renderers and exporters get labels and IDs alongside the geometry.
type Session struct {
	settings   model.PackSettings
	packer     *Packer
	placements []model.Placement
	unplaced   []model.Request
}

// NewSession creates an empty container described by settings.
func NewSession(settings model.PackSettings) (*Session, error) {
	packer, err := NewPackerWithHeuristic(settings.ContainerWidth, settings.ContainerHeight, settings.Heuristic)
	if err != nil {
		return nil, err
	}
	settings.Heuristic = packer.Heuristic()
	return &Session{settings: settings, packer: packer}, nil
}

// Add inserts a single unit of req. Quantity is ignored; use Pack to place
// several copies of a request.
func (s *Session) Add(req model.Request) (InsertResult, error) {
	res, err := s.packer.Insert(req.Width, req.Height)
	if err != nil {
		return res, fmt.Errorf("failed to insert %q: %w", req.Label, err)
	}

	unit := req
	unit.Quantity = 1
	if r, ok := res.Rect(); ok {
		s.placements = append(s.placements, model.Placement{Request: unit, X: r.X, Y: r.Y})
	} else {
		s.unplaced = append(s.unplaced, unit)
	}
	return res, nil
}

// Layout returns a snapshot of the session that stays valid after further Adds.
func (s *Session) Layout() model.Layout {
	placements := make([]model.Placement, len(s.placements))
	copy(placements, s.placements)
	unplaced := make([]model.Request, len(s.unplaced))
	copy(unplaced, s.unplaced)

	return model.Layout{
		Container:  s.settings.Container(),
		Heuristic:  s.packer.Heuristic(),
		Placements: placements,
		Unplaced:   unplaced,
		Free:       s.packer.FreeRects(),
	}
}

// Settings returns the settings the session was created with.
func (s *Session) Settings() model.PackSettings {
	return s.settings
}

// CanFit reports whether one unit of req would be placed, without
// modifying the session.
func (s *Session) CanFit(req model.Request) bool {
	return s.packer.CanFit(req.Width, req.Height)
}

// Pack expands requests by quantity and inserts every unit into a single
// container. Units are inserted in request order unless SortDescending is
// set, in which case larger areas go first (ties keep request order).
// Units that do not fit are reported in Layout.Unplaced.
func Pack(settings model.PackSettings, requests []model.Request) (model.Layout, error) {
	session, err := NewSession(settings)
	if err != nil {
		return model.Layout{}, err
	}

	for _, u := range PackOrder(requests, settings.SortDescending) {
		Logger().Debug("packing unit", "id", u.ID, "label", u.Label, "width", u.Width, "height", u.Height)
		if _, err := session.Add(u); err != nil {
			return model.Layout{}, err
		}
	}

	layout := session.Layout()
	Logger().Info("pack finished",
		"placed", len(layout.Placements),
		"unplaced", len(layout.Unplaced),
		"efficiency", layout.Efficiency())
	return layout, nil
}

// PackOrder returns the single units Pack inserts, in insertion order:
// each request expanded by quantity and, when sortDescending is set,
// ordered by area largest first (ties keep request order).
func PackOrder(requests []model.Request, sortDescending bool) []model.Request {
	units := expandRequests(requests)
	if sortDescending {
		sort.SliceStable(units, func(i, j int) bool {
			return units[i].Width*units[i].Height > units[j].Width*units[j].Height
		})
	}
	return units
}

// expandRequests turns each request into Quantity single-unit requests.
// A request with Quantity 0 is treated as a single unit.
func expandRequests(requests []model.Request) []model.Request {
	var expanded []model.Request
	for _, r := range requests {
		n := r.Quantity
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cp := r
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

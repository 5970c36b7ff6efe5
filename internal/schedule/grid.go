package schedule

import (
	"context"
	"errors"
	"fmt"

	"courtly/internal/court"
)

const defaultGridPageSize = 20

var ErrInvalidOperatingHours = errors.New("invalid operating hours configuration")

// OperatingHours is the facility's bookable day, partitioned into
// fixed-length blocks by the grid. Passed in from configuration so tests and
// deployments can vary it.
type OperatingHours struct {
	Open         string
	Close        string
	BlockMinutes int
}

func (h OperatingHours) Validate() error {
	open, err := clockToMinutes(h.Open)
	if err != nil {
		return ErrInvalidOperatingHours
	}
	close, err := clockToMinutes(h.Close)
	if err != nil {
		return ErrInvalidOperatingHours
	}
	if close <= open || h.BlockMinutes <= 0 {
		return ErrInvalidOperatingHours
	}
	return nil
}

type GridBlock struct {
	Start  string `json:"start_time"`
	End    string `json:"end_time"`
	Free   bool   `json:"free"`
	Reason string `json:"reason,omitempty"`
}

type CourtAvailability struct {
	Court  court.Court `json:"court"`
	Role   court.Role  `json:"role"`
	Blocks []GridBlock `json:"blocks"`
}

type GridFilter struct {
	CourtID  *int
	Capacity *int
	Page     int
	PageSize int
}

type Grid struct {
	Date     string              `json:"date"`
	Courts   []CourtAvailability `json:"courts"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// GridBuilder renders the free/busy calendar. It is read-only and
// non-transactional: three batched queries for the whole court set, then
// pure interval arithmetic per block.
type GridBuilder struct {
	resolver *court.Resolver
	sources  []EventSource
	hours    OperatingHours
}

func NewGridBuilder(resolver *court.Resolver, hours OperatingHours, sources ...EventSource) (*GridBuilder, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return &GridBuilder{resolver: resolver, sources: sources, hours: hours}, nil
}

func (g *GridBuilder) Build(ctx context.Context, date string, filter GridFilter) (*Grid, error) {
	if !ValidDate(date) {
		return nil, ErrInvalidDate
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultGridPageSize
	}

	principal, divisions, err := g.resolver.Hierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve hierarchy: %w", err)
	}

	all := make([]court.Court, 0, len(divisions)+1)
	if principal != nil {
		all = append(all, *principal)
	}
	all = append(all, divisions...)

	selected := make([]court.Court, 0, len(all))
	for _, c := range all {
		if filter.CourtID != nil && c.ID != *filter.CourtID {
			continue
		}
		if filter.Capacity != nil && c.MaxCapacity != *filter.Capacity {
			continue
		}
		selected = append(selected, c)
	}

	grid := &Grid{
		Date:     date,
		Courts:   []CourtAvailability{},
		Total:    len(selected),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}

	offset := (filter.Page - 1) * filter.PageSize
	if offset >= len(selected) {
		return grid, nil
	}
	end := offset + filter.PageSize
	if end > len(selected) {
		end = len(selected)
	}
	page := selected[offset:end]

	// One query per event source for the entire available court set; the
	// per-block marking below is in-memory only.
	allIDs := make([]int, 0, len(all))
	names := make(map[int]string, len(all))
	for _, c := range all {
		allIDs = append(allIDs, c.ID)
		names[c.ID] = c.Name
	}

	byCourt := make(map[int][]Event)
	if len(allIDs) > 0 {
		for _, src := range g.sources {
			events, err := src.FindActive(ctx, allIDs, date)
			if err != nil {
				return nil, fmt.Errorf("query %s events: %w", src.Kind(), err)
			}
			for _, e := range events {
				byCourt[e.CourtID] = append(byCourt[e.CourtID], e)
			}
		}
	}

	blocks := g.blockWindows(date)

	for _, c := range page {
		role := court.RoleDivision
		if principal != nil && c.ID == principal.ID {
			role = court.RolePrincipal
		}

		// Physical dominance: a division is busy whenever the principal
		// is, and the principal is busy whenever any division is.
		relevant := append([]Event(nil), byCourt[c.ID]...)
		if role == court.RoleDivision && principal != nil {
			relevant = append(relevant, byCourt[principal.ID]...)
		}
		if role == court.RolePrincipal {
			for _, d := range divisions {
				relevant = append(relevant, byCourt[d.ID]...)
			}
		}

		avail := CourtAvailability{Court: c, Role: role, Blocks: make([]GridBlock, 0, len(blocks))}
		for _, w := range blocks {
			block := GridBlock{Start: w.Start, End: w.End, Free: true}
			for _, e := range relevant {
				if w.Overlaps(e.Window) {
					name := names[e.CourtID]
					if name == "" {
						name = fmt.Sprintf("court %d", e.CourtID)
					}
					conflict := &ConflictError{BlockingKind: e.Kind, CourtName: name, Window: e.Window}
					block.Free = false
					block.Reason = conflict.Error()
					break
				}
			}
			avail.Blocks = append(avail.Blocks, block)
		}

		grid.Courts = append(grid.Courts, avail)
	}

	return grid, nil
}

// blockWindows partitions the operating day; a trailing remainder shorter
// than a full block is not bookable and is dropped.
func (g *GridBuilder) blockWindows(date string) []TimeWindow {
	open, _ := clockToMinutes(g.hours.Open)
	close, _ := clockToMinutes(g.hours.Close)

	var windows []TimeWindow
	for t := open; t+g.hours.BlockMinutes <= close; t += g.hours.BlockMinutes {
		windows = append(windows, TimeWindow{
			Date:  date,
			Start: minutesToClock(t),
			End:   minutesToClock(t + g.hours.BlockMinutes),
		})
	}
	return windows
}

func clockToMinutes(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock out of range: %s", clock)
	}
	return h*60 + m, nil
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

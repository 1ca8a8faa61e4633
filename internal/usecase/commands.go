package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"workshop-service/internal/domain/entity"
)

// Command is one action requested through the sheet add-on
type Command interface {
	Action() string
}

// SyncDatabase runs a full sync pass
type SyncDatabase struct{}

// PublishMasterGrid rewrites the master sheet
type PublishMasterGrid struct{}

// PublishProjects rewrites the projects sheet
type PublishProjects struct{}

// ColorCell paints one cell by status
type ColorCell struct {
	Pos       entity.GridPos
	Highlight entity.Highlight
}

// PlaceNote sets or clears one note
type PlaceNote struct {
	Pos  entity.GridPos
	Note *string
}

// CloseJobCardColor marks a whole row as closed
type CloseJobCardColor struct {
	Row int
}

func (SyncDatabase) Action() string      { return "db_upd" }
func (PublishMasterGrid) Action() string { return "mstr_upd" }
func (PublishProjects) Action() string   { return "prj_upd" }
func (ColorCell) Action() string         { return "color" }
func (PlaceNote) Action() string         { return "cell_note" }
func (CloseJobCardColor) Action() string { return "jc_clr" }

// ErrUnknownAction is returned for an action name with no command
var ErrUnknownAction = fmt.Errorf("invalid or missing action")

// ParseCommand decodes an action name and its data into a command.
// Color and close rows are 1-based as sent by the add-on, notes are 0-based.
func ParseCommand(action string, data json.RawMessage) (Command, error) {
	switch action {
	case "db_upd":
		return SyncDatabase{}, nil
	case "mstr_upd":
		return PublishMasterGrid{}, nil
	case "prj_upd":
		return PublishProjects{}, nil
	case "color":
		var d struct {
			Row    int    `json:"row"`
			Col    int    `json:"col"`
			Status string `json:"status"`
		}
		if err := decodeData(data, &d); err != nil {
			return nil, err
		}
		if d.Row < 1 || d.Col < 1 {
			return nil, fmt.Errorf("color: row and col must be positive")
		}
		return ColorCell{
			Pos:       entity.GridPos{Row: d.Row - 1, Col: d.Col - 1},
			Highlight: entity.ParseHighlight(d.Status),
		}, nil
	case "cell_note":
		var d struct {
			Row  int     `json:"row"`
			Col  int     `json:"col"`
			Note *string `json:"note"`
		}
		if err := decodeData(data, &d); err != nil {
			return nil, err
		}
		if d.Row < 0 || d.Col < 0 {
			return nil, fmt.Errorf("cell_note: row and col must not be negative")
		}
		return PlaceNote{Pos: entity.GridPos{Row: d.Row, Col: d.Col}, Note: d.Note}, nil
	case "jc_clr":
		var d struct {
			Row int `json:"row"`
		}
		if err := decodeData(data, &d); err != nil {
			return nil, err
		}
		if d.Row < 1 {
			return nil, fmt.Errorf("jc_clr: row must be positive")
		}
		return CloseJobCardColor{Row: d.Row - 1}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("missing data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	return nil
}

// Dispatcher executes commands against the scheduler and publisher
type Dispatcher struct {
	scheduler *SyncScheduler
	publisher *Publisher
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(scheduler *SyncScheduler, publisher *Publisher) *Dispatcher {
	return &Dispatcher{scheduler: scheduler, publisher: publisher}
}

// Dispatch runs a command and returns its result payload, if any
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (any, error) {
	switch c := cmd.(type) {
	case SyncDatabase:
		return d.scheduler.Run(ctx)
	case PublishMasterGrid:
		rows, err := d.publisher.PublishMasterGrid(ctx)
		return map[string]int{"rows": rows}, err
	case PublishProjects:
		rows, err := d.publisher.PublishProjects(ctx)
		return map[string]int{"projects": rows}, err
	case ColorCell:
		return nil, d.publisher.ColorCell(ctx, c.Pos, c.Highlight)
	case PlaceNote:
		return nil, d.publisher.PlaceNote(ctx, c.Pos, c.Note)
	case CloseJobCardColor:
		return nil, d.publisher.CloseJobCardRow(ctx, c.Row)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, cmd)
	}
}

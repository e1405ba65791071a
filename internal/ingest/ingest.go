// Package ingest parses the newline-delimited JSON input stream described
// in spec §6 into domain work centers and work orders, grouped by work
// center. Parsing, grouping, and wire format are explicitly out of the
// engine's own scope (spec §1); this package is the thin external
// collaborator that bridges the wire format to the engine's domain types.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wbaizer/naologic-reflow/internal/domain"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// record is the envelope every line of the input stream is shaped as
// (spec §6): `{ docId, docType, data }`.
type record struct {
	DocID   string          `json:"docId"`
	DocType string          `json:"docType"`
	Data    json.RawMessage `json:"data"`
}

type shiftDTO struct {
	DayOfWeek int `json:"dayOfWeek" validate:"min=0,max=6"`
	StartHour int `json:"startHour" validate:"min=0,max=23"`
	EndHour   int `json:"endHour" validate:"min=0,max=23"`
}

type maintenanceWindowDTO struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Reason    string    `json:"reason"`
}

type workCenterDTO struct {
	Name               string                 `json:"name" validate:"required"`
	Shifts             []shiftDTO             `json:"shifts" validate:"required,min=1,dive"`
	MaintenanceWindows []maintenanceWindowDTO `json:"maintenanceWindows" validate:"dive"`
}

type workOrderDTO struct {
	WorkOrderNumber       string    `json:"workOrderNumber" validate:"required"`
	ManufacturingOrderID  string    `json:"manufacturingOrderId"`
	WorkCenterID          string    `json:"workCenterId" validate:"required"`
	StartDate             time.Time `json:"startDate" validate:"required"`
	EndDate               time.Time `json:"endDate" validate:"required"`
	DurationMinutes       int       `json:"durationMinutes" validate:"required,gt=0"`
	IsMaintenance         bool      `json:"isMaintenance"`
	DependsOnWorkOrderIDs []string  `json:"dependsOnWorkOrderIds"`
}

// Batch groups the parsed work centers and their orders (fixed and
// movable together, as C4 expects).
type Batch struct {
	Centers map[string]*domain.WorkCenter
	Orders  map[string][]*domain.WorkOrder // keyed by work center name
}

// Parse reads the NDJSON stream, validates each record's payload, and
// groups the results by work center name. Records are unordered in the
// stream (spec §6); work centers are constructed only after every
// "workCenter" record is seen, and then orders are attached by name.
func Parse(r io.Reader) (*Batch, error) {
	var centerDTOs []workCenterDTO
	var orderDTOs []workOrderDTO

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, reflowerr.Wrap(reflowerr.KindInputInvalid, err, fmt.Sprintf("malformed record at line %d", lineNo))
		}

		switch rec.DocType {
		case "workCenter":
			var dto workCenterDTO
			if err := decodeAndValidate(rec.Data, &dto); err != nil {
				return nil, reflowerr.Wrap(reflowerr.KindInputInvalid, err, fmt.Sprintf("invalid workCenter record at line %d", lineNo), rec.DocID)
			}
			centerDTOs = append(centerDTOs, dto)
		case "workOrder", "manufacturingOrder":
			var dto workOrderDTO
			if err := decodeAndValidate(rec.Data, &dto); err != nil {
				return nil, reflowerr.Wrap(reflowerr.KindInputInvalid, err, fmt.Sprintf("invalid workOrder record at line %d", lineNo), rec.DocID)
			}
			orderDTOs = append(orderDTOs, dto)
		default:
			return nil, reflowerr.New(reflowerr.KindInputInvalid, fmt.Sprintf("unknown docType %q at line %d", rec.DocType, lineNo), rec.DocID)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, reflowerr.Wrap(reflowerr.KindInputInvalid, err, "failed reading input stream")
	}

	centers := make(map[string]*domain.WorkCenter, len(centerDTOs))
	for _, dto := range centerDTOs {
		center, err := toWorkCenter(dto)
		if err != nil {
			return nil, err
		}
		centers[center.Name] = center
	}

	orders := make(map[string][]*domain.WorkOrder, len(centers))
	for _, dto := range orderDTOs {
		order, err := toWorkOrder(dto)
		if err != nil {
			return nil, err
		}
		orders[dto.WorkCenterID] = append(orders[dto.WorkCenterID], order)
	}

	return &Batch{Centers: centers, Orders: orders}, nil
}

func decodeAndValidate(data json.RawMessage, dto any) error {
	if err := json.Unmarshal(data, dto); err != nil {
		return err
	}
	return validate.Struct(dto)
}

func toWorkCenter(dto workCenterDTO) (*domain.WorkCenter, error) {
	shifts := make([]domain.Shift, 0, len(dto.Shifts))
	for _, s := range dto.Shifts {
		shifts = append(shifts, domain.Shift{
			Weekday:   time.Weekday(s.DayOfWeek),
			StartHour: s.StartHour,
			EndHour:   s.EndHour,
		})
	}
	maintenance := make([]domain.MaintenanceWindow, 0, len(dto.MaintenanceWindows))
	for _, m := range dto.MaintenanceWindows {
		maintenance = append(maintenance, domain.MaintenanceWindow{
			Start:  m.StartDate,
			End:    m.EndDate,
			Reason: m.Reason,
		})
	}
	return domain.NewWorkCenter(dto.Name, shifts, maintenance)
}

func toWorkOrder(dto workOrderDTO) (*domain.WorkOrder, error) {
	return domain.NewWorkOrder(
		dto.WorkOrderNumber,
		dto.WorkCenterID,
		dto.StartDate,
		dto.EndDate,
		dto.DurationMinutes,
		dto.IsMaintenance,
		dto.DependsOnWorkOrderIDs,
	)
}

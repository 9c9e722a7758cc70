package grid

import (
	"errors"

	"github.com/iliyamo/flyexpress/internal/repository"
)

// ErrBeforeFloor is returned when a scroll would move the outbound
// axis earlier than the user's originally chosen departure date.  The
// caller must reject such a request before any storage query.
var ErrBeforeFloor = errors.New("outbound date before window floor")

// ErrEmptyWindow is returned when a shift is attempted on an axis
// that holds no days; the only recovery is a full window reload.
var ErrEmptyWindow = errors.New("grid window is empty")

// Window is the explicit, versioned cache of the currently rendered
// grid: the outbound and return day-price arrays plus the floor date
// the outbound axis may never scroll past.  Every successful shift
// evicts one edge, appends the freshly queried opposite edge and bumps
// Version, so a client holding a stale copy can detect the divergence
// and fall back to a full reload.
type Window struct {
	Origin      string                        `json:"origin"`
	Destination string                        `json:"destination"`
	Floor       string                        `json:"floor"`
	Out         []repository.OutboundDayPrice `json:"outboundPrices"`
	Ret         []repository.ReturnDayPrice   `json:"returnPrices"`
	Version     uint64                        `json:"version"`
}

// NewWindow builds the initial window.  The floor is the departure
// date the user originally searched for.
func NewWindow(origin, destination, floor string, out []repository.OutboundDayPrice, ret []repository.ReturnDayPrice) *Window {
	return &Window{
		Origin:      origin,
		Destination: destination,
		Floor:       floor,
		Out:         out,
		Ret:         ret,
		Version:     1,
	}
}

// BeforeFloor reports whether date falls before the floor.  ISO dates
// compare correctly as strings.
func BeforeFloor(floor, date string) bool {
	return floor != "" && date < floor
}

// ShiftReturnLater drops the oldest return row and appends the newly
// queried one.
func (w *Window) ShiftReturnLater(day repository.ReturnDayPrice) error {
	if len(w.Ret) == 0 {
		return ErrEmptyWindow
	}
	w.Ret = append(w.Ret[1:], day)
	w.Version++
	return nil
}

// ShiftReturnEarlier drops the newest return row and prepends the
// newly queried one.
func (w *Window) ShiftReturnEarlier(day repository.ReturnDayPrice) error {
	if len(w.Ret) == 0 {
		return ErrEmptyWindow
	}
	w.Ret = append([]repository.ReturnDayPrice{day}, w.Ret[:len(w.Ret)-1]...)
	w.Version++
	return nil
}

// ShiftOutboundLater drops the oldest outbound column and appends the
// newly queried one.
func (w *Window) ShiftOutboundLater(day repository.OutboundDayPrice) error {
	if len(w.Out) == 0 {
		return ErrEmptyWindow
	}
	w.Out = append(w.Out[1:], day)
	w.Version++
	return nil
}

// ShiftOutboundEarlier drops the newest outbound column and prepends
// the newly queried one.  Scrolling past the floor is rejected without
// touching the window.
func (w *Window) ShiftOutboundEarlier(day repository.OutboundDayPrice) error {
	if BeforeFloor(w.Floor, day.Date) {
		return ErrBeforeFloor
	}
	if len(w.Out) == 0 {
		return ErrEmptyWindow
	}
	w.Out = append([]repository.OutboundDayPrice{day}, w.Out[:len(w.Out)-1]...)
	w.Version++
	return nil
}

// Matrix combines the window's current axes into the rendered matrix
// and its cheapest valid total.
func (w *Window) Matrix() ([][]Cell, float64) {
	return Combine(w.Out, w.Ret)
}

package web

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"todocal/internal/app"
	"todocal/internal/calendar"
	"todocal/internal/codec"
	"todocal/internal/form"
	"todocal/internal/ics"
	appLog "todocal/internal/log"
	"todocal/internal/model"
	"todocal/internal/nav"
	"todocal/internal/store"
)

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.State())
}

type viewRequest struct {
	View nav.ViewMode `json:"view"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.View == "" {
		writeError(w, http.StatusBadRequest, "view is required")
		return
	}
	writeJSON(w, http.StatusOK, s.app.SetView(req.View))
}

type dateRequest struct {
	Date string `json:"date"`
}

type dateResponse struct {
	app.State
	Accepted bool `json:"accepted"`
}

// handleDate applies date-picker input. Unparseable input is not an error:
// the previous selection is kept and accepted=false is reported.
func (s *Server) handleDate(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, ok := s.app.PickDate(req.Date)
	writeJSON(w, http.StatusOK, dateResponse{State: st, Accepted: ok})
}

func (s *Server) handlePrevMonth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.PrevMonth())
}

func (s *Server) handleNextMonth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.NextMonth())
}

// queryDate reads the optional ?date= parameter.
func queryDate(r *http.Request) (*model.Date, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type hourSlotDTO struct {
	calendar.HourSlot
	CanCreate bool `json:"can_create"`
}

type dayResponse struct {
	Date   model.Date    `json:"date"`
	AllDay []model.Task  `json:"all_day"`
	Hours  []hourSlotDTO `json:"hours"`
}

// GET /api/day?date=YYYY-MM-DD (defaults to the selected date)
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	d, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	grid := s.app.Day(d)
	resp := dayResponse{
		Date:   grid.Date,
		AllDay: grid.AllDay,
		Hours:  make([]hourSlotDTO, 0, len(grid.Hours)),
	}
	for _, slot := range grid.Hours {
		resp.Hours = append(resp.Hours, hourSlotDTO{HourSlot: slot, CanCreate: slot.CanCreate()})
	}
	writeJSON(w, http.StatusOK, resp)
}

type monthResponse struct {
	calendar.MonthGrid
	Title    string   `json:"title"`
	Weekdays []string `json:"weekdays"`
}

// GET /api/month?date=YYYY-MM-DD (any day of the month; defaults to the
// selected date)
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	d, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	grid := s.app.Month(d)
	writeJSON(w, http.StatusOK, monthResponse{
		MonthGrid: grid,
		Title:     grid.Title(),
		Weekdays:  calendar.WeekdayHeaders[:],
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Tasks())
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.app.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		appLog.Error("delete task failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type optionsResponse struct {
	Times         []string `json:"times"`
	Repeat        []string `json:"repeat"`
	Notifications []string `json:"notifications"`
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	resp := optionsResponse{Times: codec.Options()}
	for _, r := range model.Repeats() {
		resp.Repeat = append(resp.Repeat, r.String())
	}
	for _, n := range model.Notifications() {
		resp.Notifications = append(resp.Notifications, n.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

type openRequest struct {
	TaskID string      `json:"task_id"`
	Date   *model.Date `json:"date"`
	Hour   *int        `json:"hour"`
}

// handleFormOpen is the selection channel: an empty task_id opens a create
// form, optionally preset to a date and hour.
func (s *Server) handleFormOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.app.Select(req.TaskID, form.Preset{Date: req.Date, Hour: req.Hour})
	switch {
	case errors.Is(err, app.ErrUnknownTask):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrCurrentHour):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handleFormAdd(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.AddForSelected())
}

func (s *Server) handleFormUpdate(w http.ResponseWriter, r *http.Request) {
	var f form.Fields
	if err := decodeJSON(r, &f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.app.UpdateForm(f))
}

type formDateRequest struct {
	Date *model.Date `json:"date"`
}

func (s *Server) handleFormStartDate(w http.ResponseWriter, r *http.Request) {
	var req formDateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.app.SetStartDate(req.Date))
}

func (s *Server) handleFormEndDate(w http.ResponseWriter, r *http.Request) {
	var req formDateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.app.SetEndDate(req.Date))
}

func (s *Server) handleFormSubmit(w http.ResponseWriter, _ *http.Request) {
	task, err := s.app.Submit()
	if err != nil {
		var ve *form.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusUnprocessableEntity, errResp{Error: ve.Err.Error(), Field: ve.Field})
			return
		}
		appLog.Error("submit task failed", err)
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleFormDiscard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Discard())
}

func (s *Server) handleFormDelete(w http.ResponseWriter, _ *http.Request) {
	if _, err := s.app.DeleteEditing(); err != nil {
		if errors.Is(err, form.ErrNotEditing) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		appLog.Error("delete task failed", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	writeJSON(w, http.StatusOK, s.app.State())
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	body := ics.Export(s.app.Tasks(), ics.ExportOptions{
		Name:  s.cfg.CalendarName,
		Stamp: time.Now(),
	})
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

type importResponse struct {
	Imported int `json:"imported"`
	Parsed   int `json:"parsed"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "text/calendar") {
		writeError(w, http.StatusUnsupportedMediaType, "expected text/calendar")
		return
	}
	tasks, err := ics.Import(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: s.app.Import(tasks), Parsed: len(tasks)})
}

package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

func (h *Handler) ListAttendances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAttendances")
	defer span.End()

	records, err := h.attendanceService.ListAttendances(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list attendances failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendancesToDTO(records))
}

func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordAttendance")
	defer span.End()

	var req recordAttendanceRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rec, err := h.attendanceService.RecordAttendance(ctx, req.PlayerID, attendance.Status(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "record attendance failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendanceToDTO(rec))
}

// RecordAttendanceBatch answers 200 even when single entries fail; each
// failure is reported next to its player id.
func (h *Handler) RecordAttendanceBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordAttendanceBatch")
	defer span.End()

	var req recordAttendanceBatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.AttendanceEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, usecase.AttendanceEntry{PlayerID: e.PlayerID, Status: attendance.Status(e.Status)})
	}

	results, err := h.attendanceService.RecordAttendanceBatch(ctx, entries)
	if err != nil {
		h.logger.WarnContext(ctx, "record attendance batch failed", "entries", len(entries), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]attendanceBatchItemDTO, 0, len(results))
	for _, res := range results {
		item := attendanceBatchItemDTO{PlayerID: res.PlayerID}
		if res.Err != nil {
			item.Error = res.Err.Error()
		} else {
			rec := attendanceToDTO(res.Record)
			item.Record = &rec
		}
		out = append(out, item)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetAttendanceSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAttendanceSheet")
	defer span.End()

	day, err := parseDate("date", strings.TrimSpace(r.PathValue("date")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.attendanceService.ListForDay(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "get attendance sheet failed", "day", attendance.FormatDay(day), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]dayEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dayEntryDTO{PlayerID: e.PlayerID, Status: string(e.Status)})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"date":    attendance.FormatDay(day),
		"entries": out,
	})
}

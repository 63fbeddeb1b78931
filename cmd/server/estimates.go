package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Simplici0/homecost/internal/achievements"
	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/export"
	"github.com/Simplici0/homecost/internal/finance"
	"github.com/Simplici0/homecost/internal/pricing"
	"github.com/Simplici0/homecost/internal/schedule"
	"github.com/Simplici0/homecost/internal/upsell"
)

type houseResponse struct {
	Estimate     *estimate.Result           `json:"estimate"`
	Schedule     schedule.Result            `json:"schedule"`
	Achievements []achievements.Achievement `json:"achievements"`
	Upsells      []upsell.Suggestion        `json:"upsells"`
	Financing    *finance.Financing         `json:"financing,omitempty"`
	Warnings     []estimate.Warning         `json:"warnings"`
}

func (s *server) handleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": s.catalog.All()})
}

func (s *server) handleHouseEstimate(w http.ResponseWriter, r *http.Request) {
	var req houseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.estimateHouse(s.provider.Current(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if resp.Estimate.ConfidenceDegraded {
		log.Warn().
			Str("request_id", requestID(r)).
			Int("warnings", len(resp.Warnings)).
			Msg("estimate used fallback pricing")
	}
	writeJSON(w, http.StatusOK, resp)
}

// estimateHouse runs every whole-house calculator against one table snapshot.
func (s *server) estimateHouse(table *pricing.Table, req houseRequest) (houseResponse, error) {
	res, err := estimate.EstimateHouse(table, req.Input)
	if err != nil {
		return houseResponse{}, err
	}
	sched, err := schedule.Estimate(table, req.Input)
	if err != nil {
		return houseResponse{}, err
	}

	suggestions, upsellWarnings := upsell.Suggest(table, req.Input, res, s.upsellLimit)
	if suggestions == nil {
		suggestions = []upsell.Suggestion{}
	}

	resp := houseResponse{
		Estimate:     res,
		Schedule:     sched,
		Achievements: achievements.Evaluate(req.Input, res),
		Upsells:      suggestions,
		Warnings:     make([]estimate.Warning, 0, len(res.Warnings)+len(upsellWarnings)),
	}
	resp.Warnings = append(append(resp.Warnings, res.Warnings...), upsellWarnings...)

	if f := req.Financing; f != nil {
		price := f.HomePrice
		if price == 0 && res.OutTheDoor != nil {
			price = res.OutTheDoor.Total.Midpoint().Round(2).InexactFloat64()
		}
		fin, err := finance.Calculate(price, f.DownPaymentPercent, f.AnnualRatePercent, f.TermYears)
		if err != nil {
			return houseResponse{}, err
		}
		resp.Financing = &fin
	}
	return resp, nil
}

func (s *server) handleHouseExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "pdf" {
		writeError(w, http.StatusBadRequest, "invalid_format", "format must be xlsx or pdf")
		return
	}

	var req houseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.estimateHouse(s.provider.Current(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}

	report := export.Report{
		Title:       req.Title,
		Input:       &req.Input,
		Estimate:    resp.Estimate,
		Schedule:    &resp.Schedule,
		Financing:   resp.Financing,
		GeneratedAt: time.Now(),
	}

	var (
		data        []byte
		contentType string
	)
	switch format {
	case "pdf":
		data, err = export.PDF(report)
		contentType = "application/pdf"
	default:
		data, err = export.Excel(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		writeFailure(w, fmt.Errorf("render %s: %w", format, err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="estimate.%s"`, format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("write export")
	}
}

func (s *server) handleRoomsEstimate(w http.ResponseWriter, r *http.Request) {
	var req roomsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := estimate.EstimateRooms(s.provider.Current(), req.TotalSqft, req.Rooms, s.catalog)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleFinancing(w http.ResponseWriter, r *http.Request) {
	var req financingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fin, err := finance.Calculate(req.HomePrice, req.DownPaymentPercent, req.AnnualRatePercent, req.TermYears)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fin)
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/pdusim/internal/outlet"
	"github.com/nerrad567/pdusim/internal/resource"
)

// pduURI returns the base URI of the configured unit.
func (s *Server) pduURI() string {
	return fmt.Sprintf("/redfish/v1/PowerEquipment/RackPDUs/%s", s.pdu.ID)
}

func (s *Server) handleListRackPDUs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, resource.Collection("/redfish/v1/PowerEquipment/RackPDUs",
		"#PowerDistributionCollection.PowerDistributionCollection", "Rack PDU Collection",
		[]string{s.pduURI()}))
}

func (s *Server) handleGetRackPDU(w http.ResponseWriter, _ *http.Request) {
	base := s.pduURI()
	body := resource.New(base, "#PowerDistribution.v1_1_0.PowerDistribution",
		s.pdu.ID, fmt.Sprintf("Rack PDU %s", s.pdu.ID))
	body["Model"] = s.pdu.Model
	body["SerialNumber"] = s.pdu.SerialNumber
	body["Manufacturer"] = s.pdu.Manufacturer
	body["Outlets"] = ref(base + "/Outlets")
	body["Branches"] = ref(base + "/Branches")
	body["Mains"] = ref(base + "/Mains")
	body["Metrics"] = ref(base + "/Metrics")
	body["Sensors"] = ref(base + "/Sensors")
	writeJSON(w, http.StatusOK, body)
}

// handleMetrics aggregates unit-level figures for energy controllers
// that poll a single endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	now := time.Now()
	on := s.bank.Snapshot()

	body := resource.New(s.pduURI()+"/Metrics", "#PowerMetrics.v1_0_0.PowerMetrics",
		fmt.Sprintf("Metrics-%s", s.pdu.ID), "PDU Metrics")
	body["PowerWatts"] = resource.Round(s.engine.TotalPower(on, now), 2)
	body["EnergykWh"] = resource.Round(s.engine.TotalEnergy(on, now), 4)
	body["FrequencyHz"] = resource.Round(s.engine.Frequency(now), 2)
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleListBranches(w http.ResponseWriter, _ *http.Request) {
	members := make([]string, 0, s.pdu.Branches)
	for i := 1; i <= s.pdu.Branches; i++ {
		members = append(members, fmt.Sprintf("%s/Branches/%d", s.pduURI(), i))
	}
	writeJSON(w, http.StatusOK, resource.Collection(s.pduURI()+"/Branches",
		"#CircuitCollection.CircuitCollection", "Branch Collection", members))
}

func (s *Server) handleGetBranch(w http.ResponseWriter, r *http.Request) {
	branch, err := strconv.Atoi(chi.URLParam(r, "branch"))
	if err != nil || branch < 1 || branch > s.pdu.Branches {
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Branch not found")
		return
	}
	writeJSON(w, http.StatusOK, resource.New(
		fmt.Sprintf("%s/Branches/%d", s.pduURI(), branch),
		"#Circuit.v1_0_0.Circuit", strconv.Itoa(branch),
		fmt.Sprintf("Branch %d", branch)))
}

func (s *Server) handleListOutlets(w http.ResponseWriter, _ *http.Request) {
	members := make([]string, 0, s.bank.Count())
	for i := 1; i <= s.bank.Count(); i++ {
		members = append(members, fmt.Sprintf("%s/Outlets/%d", s.pduURI(), i))
	}
	writeJSON(w, http.StatusOK, resource.Collection(s.pduURI()+"/Outlets",
		"#OutletCollection.OutletCollection", "Outlet Collection", members))
}

func (s *Server) handleGetOutlet(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "outlet"))
	if err != nil {
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Outlet not found")
		return
	}

	o, err := s.bank.Get(index)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	uri := fmt.Sprintf("%s/Outlets/%d", s.pduURI(), index)
	state := resource.StateDisabled
	if o.On() {
		state = resource.StateEnabled
	}

	body := resource.New(uri, "#Outlet.v1_0_0.Outlet",
		strconv.Itoa(index), fmt.Sprintf("Outlet %d", index))
	body["Status"] = resource.Status(state)
	body["Connected"] = o.Connected()
	body["RatedLoadWatts"] = o.RatedLoadWatts
	body["Actions"] = map[string]any{
		"#Outlet.PowerControl": map[string]any{
			"target":                             uri + "/Actions/Outlet.PowerControl",
			"PowerState@Redfish.AllowableValues": []string{"On", "Off", "Cycle"},
		},
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleListMains(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, resource.Collection(s.pduURI()+"/Mains",
		"#PowerSupplyCollection.PowerSupplyCollection", "Mains Collection",
		[]string{s.pduURI() + "/Mains/AC1"}))
}

func (s *Server) handleGetMainsAC1(w http.ResponseWriter, _ *http.Request) {
	body := resource.New(s.pduURI()+"/Mains/AC1",
		"#PowerSupply.v1_5_0.PowerSupply", "AC1", "Main AC Input")
	body["Phases"] = s.pdu.Phases
	writeJSON(w, http.StatusOK, body)
}

// handleSegmentPowerControl applies On/Off/Cycle to a whole load
// segment. The action is validated before the segment so a bad action
// on a bad segment still reads as a bad action, matching unit firmware.
func (s *Server) handleSegmentPowerControl(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "pduID") != s.pdu.ID {
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "PDU not found")
		return
	}

	var body struct {
		Action    string `json:"Action"`
		ActionAlt string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueFormat, "Invalid JSON body")
		return
	}

	action, err := outlet.ParseAction(firstNonEmpty(body.Action, body.ActionAlt))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	segment, convErr := strconv.Atoi(chi.URLParam(r, "segment"))
	if convErr != nil {
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueFormat, "Invalid loadseg_id")
		return
	}

	result, err := s.bank.ApplySegment(segment, action)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.logger.Info("load segment action applied",
		"segment", result.Segment,
		"action", string(result.Action),
		"first_outlet", result.Affected.Start,
		"last_outlet", result.Affected.End,
		"username", usernameFromContext(r.Context()),
	)

	// Cycle ends with the segment energised.
	endState := outlet.StateOn
	if action == outlet.ActionOff {
		endState = outlet.StateOff
	}
	if s.notifier != nil {
		s.notifier.SegmentAction(result, endState)
	}
	if s.recorder != nil {
		for i := result.Affected.Start; i <= result.Affected.End; i++ {
			s.recorder.WriteOutletState(i, endState == outlet.StateOn)
		}
	}

	payload := resource.New(
		fmt.Sprintf("/redfish/v1/PowerDistribution/%s/PowerControl/Loadsegment/%d/", s.pdu.ID, segment),
		"#ActionResponse.v1_0_0.ActionResponse",
		fmt.Sprintf("Loadsegment-%d", segment), "Loadsegment PowerControl Result")
	payload["PduId"] = s.pdu.ID
	payload["LoadSegment"] = segment
	payload["ActionApplied"] = string(action)
	payload["OutletsAffected"] = []int{result.Affected.Start, result.Affected.End}
	writeJSON(w, http.StatusOK, payload)
}

package api

import (
	"net/http"

	"github.com/nerrad567/pdusim/internal/resource"
)

// handleServiceRoot returns the service root. Per the schema the root
// carries no Status block.
func (s *Server) handleServiceRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"@odata.id":      "/redfish/v1/",
		"@odata.type":    "#ServiceRoot.v1_15_0.ServiceRoot",
		"Id":             "RootService",
		"Name":           "Root Service",
		"RedfishVersion": "1.10.0",
		"UUID":           s.pdu.ServiceUUID,
		"SessionService": ref("/redfish/v1/SessionService"),
		"AccountService": ref("/redfish/v1/AccountService"),
		"Managers":       ref("/redfish/v1/Managers"),
		"PowerEquipment": ref("/redfish/v1/PowerEquipment"),
		"EventService":   ref("/redfish/v1/EventService"),
	})
}

func (s *Server) handleSessionService(w http.ResponseWriter, _ *http.Request) {
	body := resource.New("/redfish/v1/SessionService",
		"#SessionService.v1_1_0.SessionService", "SessionService", "Session Service")
	body["Sessions"] = ref("/redfish/v1/SessionService/Sessions")
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleAccountService(w http.ResponseWriter, _ *http.Request) {
	body := resource.New("/redfish/v1/AccountService",
		"#AccountService.v1_5_0.AccountService", "AccountService", "Account Service")
	body["Accounts"] = ref("/redfish/v1/AccountService/Accounts")
	body["Roles"] = ref("/redfish/v1/AccountService/Roles")
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleEventService(w http.ResponseWriter, _ *http.Request) {
	body := resource.New("/redfish/v1/EventService",
		"#EventService.v1_6_0.EventService", "EventService", "Event Service")
	body["Subscriptions"] = ref("/redfish/v1/EventService/Subscriptions")
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handlePowerEquipment(w http.ResponseWriter, _ *http.Request) {
	body := resource.New("/redfish/v1/PowerEquipment",
		"#PowerEquipment.v1_0_0.PowerEquipment", "PowerEquipment", "Power Equipment")
	body["RackPDUs"] = ref("/redfish/v1/PowerEquipment/RackPDUs")
	writeJSON(w, http.StatusOK, body)
}

// ref builds an OData reference object.
func ref(uri string) map[string]any {
	return map[string]any{"@odata.id": uri}
}

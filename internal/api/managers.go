package api

import (
	"net/http"

	"github.com/nerrad567/pdusim/internal/resource"
)

func (s *Server) handleListManagers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, resource.Collection("/redfish/v1/Managers",
		"#ManagerCollection.ManagerCollection", "Manager Collection",
		[]string{"/redfish/v1/Managers/manager"}))
}

func (s *Server) handleGetManager(w http.ResponseWriter, _ *http.Request) {
	body := resource.New("/redfish/v1/Managers/manager",
		"#Manager.v1_11_0.Manager", "manager", "Mock PDU Manager")
	body["NetworkProtocol"] = ref("/redfish/v1/Managers/managers/NetworkProtocol")
	body["LogServices"] = ref("/redfish/v1/Managers/1/LogServices")
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleNetworkProtocol(w http.ResponseWriter, _ *http.Request) {
	body := resource.New("/redfish/v1/Managers/managers/NetworkProtocol",
		"#ManagerNetworkProtocol.v1_6_0.ManagerNetworkProtocol",
		"NetworkProtocol", "Network Protocol")
	body["HTTP"] = map[string]any{"Port": 80}
	body["HTTPS"] = map[string]any{"Port": 443}
	body["SSDP"] = map[string]any{"ProtocolEnabled": false}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleLogServices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, resource.Collection("/redfish/v1/Managers/1/LogServices",
		"#LogServiceCollection.LogServiceCollection", "Log Service Collection",
		[]string{"/redfish/v1/Managers/1/LogServices/Log"}))
}

func (s *Server) handleLog(w http.ResponseWriter, _ *http.Request) {
	body := resource.New("/redfish/v1/Managers/1/LogServices/Log",
		"#LogService.v1_2_0.LogService", "Log", "System Log")
	body["Entries"] = ref("/redfish/v1/Managers/1/LogServices/Log/Entries")
	writeJSON(w, http.StatusOK, body)
}

// handleLogEntries serves the fixed boot entries of the unit. Entries
// are inlined rather than referenced, like the real firmware does.
func (s *Server) handleLogEntries(w http.ResponseWriter, _ *http.Request) {
	bootEpoch := s.engine.StartEpoch()
	entries := []map[string]any{
		{
			"@odata.id":   "/redfish/v1/Managers/1/LogServices/Log/Entries/1",
			"@odata.type": "#LogEntry.v1_9_0.LogEntry",
			"Id":          "1",
			"Name":        "Log Entry 1",
			"Message":     "Mock PDU boot",
			"Created":     bootEpoch,
			"Severity":    "OK",
		},
		{
			"@odata.id":   "/redfish/v1/Managers/1/LogServices/Log/Entries/2",
			"@odata.type": "#LogEntry.v1_9_0.LogEntry",
			"Id":          "2",
			"Name":        "Log Entry 2",
			"Message":     "REST API enabled",
			"Created":     bootEpoch + 1,
			"Severity":    "OK",
		},
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"@odata.id":           "/redfish/v1/Managers/1/LogServices/Log/Entries",
		"@odata.type":         "#LogEntryCollection.LogEntryCollection",
		"Name":                "Log Entry Collection",
		"Members@odata.count": len(entries),
		"Members":             entries,
	})
}

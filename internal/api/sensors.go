package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/pdusim/internal/resource"
)

// handleSensorsRoot serves the sensors index. The emulated unit exposes
// sensors by naming convention rather than a browsable collection, so
// this stays a resource with a pointer note.
func (s *Server) handleSensorsRoot(w http.ResponseWriter, _ *http.Request) {
	body := resource.New(s.pduURI()+"/Sensors",
		"#SensorCollection.SensorCollection",
		fmt.Sprintf("Sensors-%s", s.pdu.ID), "Sensors")
	body["Note"] = "Access individual sensors via /Sensors/<SensorId> (e.g., PowerOUTLET44, FreqMains, PDUPower)."
	writeJSON(w, http.StatusOK, body)
}

// handleGetSensor resolves a sensor id into a live reading. Anything
// the grammar cannot parse is a missing resource.
func (s *Server) handleGetSensor(w http.ResponseWriter, r *http.Request) {
	sensorID := chi.URLParam(r, "sensorID")

	reading, err := s.resolver.Resolve(sensorID, time.Now())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if s.recorder != nil {
		s.recorder.WriteReading(reading.ID, reading.Quantity, reading.Units, reading.Value)
	}

	writeJSON(w, http.StatusOK, resource.Sensor(
		fmt.Sprintf("%s/Sensors/%s", s.pduURI(), sensorID),
		reading.ID, reading.Name, reading.Quantity, reading.Units,
		reading.Context, reading.Value))
}

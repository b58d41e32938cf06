package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/pdusim/internal/events"
	"github.com/nerrad567/pdusim/internal/resource"
)

const subscriptionsURI = "/redfish/v1/EventService/Subscriptions"

func subscriptionResource(sub *events.Subscription) map[string]any {
	body := resource.New(
		fmt.Sprintf("%s/%d", subscriptionsURI, sub.ID),
		"#EventDestination.v1_8_0.EventDestination",
		strconv.FormatInt(sub.ID, 10),
		fmt.Sprintf("Subscription %d", sub.ID))
	body["Destination"] = sub.Destination
	body["EventTypes"] = []string{sub.EventType}
	body["Context"] = sub.Context
	body["Protocol"] = sub.Protocol
	body["Created"] = sub.CreatedAt.Unix()
	return body
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.subs.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	members := make([]string, 0, len(subs))
	for _, sub := range subs {
		members = append(members, fmt.Sprintf("%s/%d", subscriptionsURI, sub.ID))
	}
	writeJSON(w, http.StatusOK, resource.Collection(subscriptionsURI,
		"#EventDestinationCollection.EventDestinationCollection",
		"Event Subscription Collection", members))
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "subID"), 10, 64)
	if err != nil {
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Subscription not found")
		return
	}

	sub, err := s.subs.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptionResource(sub))
}

// handleCreateSubscription registers an event destination. Delivery is
// never attempted; the registry only exercises the lifecycle.
func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Destination string `json:"destination"`
		Event       string `json:"event"`
		Context     string `json:"context"`
		Protocol    string `json:"protocol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueFormat, "Invalid JSON body")
		return
	}

	sub := &events.Subscription{
		Destination: body.Destination,
		EventType:   body.Event,
		Context:     body.Context,
		Protocol:    body.Protocol,
	}
	if err := s.subs.Create(r.Context(), sub); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", subscriptionsURI, sub.ID))
	writeJSON(w, http.StatusCreated, subscriptionResource(sub))
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "subID"), 10, 64)
	if err != nil {
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Subscription not found")
		return
	}

	if err := s.subs.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

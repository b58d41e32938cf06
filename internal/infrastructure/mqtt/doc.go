// Package mqtt is the simulator's outbound event channel.
//
// Outlet state changes, segment-wide power actions and service
// lifecycle events are published to a broker so dashboards and lab
// orchestration can follow the unit without polling the management
// API. Traffic is one-way — the simulator never subscribes, and all
// control goes through HTTP.
//
//	pdusim → broker → observers
//
// A retained status message on pdusim/system/status tracks the
// simulator's own availability: "online" after each (re)connect,
// "offline" with a reason on graceful shutdown, and the registered
// last-will fires if the session drops without one.
//
// TLS and credentials come from the mqtt section of config.yaml;
// anonymous plaintext is fine against a local mosquitto but nothing
// else.
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.OutletState("2", 17)
//	client.Publish(topic, []byte(`{"state":"On"}`), 1, true)
package mqtt

package host

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/scxmlgo/scxml/core"
	"github.com/scxmlgo/scxml/util"
)

// WSUpgrader is the websocket.Upgrader used by WebSocketHandler. A
// bare Upgrader{} has a nil CheckOrigin, so gorilla/websocket's
// default check applies: a request whose Origin header names a host
// other than the request's Host is rejected.
var WSUpgrader = websocket.Upgrader{}

// wsRequest is one inbound WebSocket message: deliver an event to a
// chart.
type wsRequest struct {
	ChartId string     `json:"chartId"`
	Event   core.Event `json:"event"`
}

// wsResponse is one outbound WebSocket message reporting a chart's
// configuration after processing an event.
type wsResponse struct {
	ChartId       string   `json:"chartId"`
	Configuration []string `json:"configuration"`
	Phase         string   `json:"phase"`
	Error         string   `json:"error,omitempty"`
}

// WebSocketHandler returns an http.HandlerFunc that upgrades each
// connection and, for every inbound wsRequest, calls
// fleet.Get(chartId).Send(event) and writes back the resulting
// configuration. Grounded on sheens's own mcrew WebSocket service,
// which runs one upgrade-then-read-loop goroutine per connection.
func WebSocketHandler(fleet *Fleet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := WSUpgrader.Upgrade(w, r, nil)
		if err != nil {
			util.Logf("host: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			mt, message, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var req wsRequest
			if err := json.Unmarshal(message, &req); err != nil {
				writeWSError(conn, mt, "", err)
				continue
			}

			chart, have := fleet.Get(req.ChartId)
			if !have {
				writeWSError(conn, mt, req.ChartId, errUnknownChart(req.ChartId))
				continue
			}

			sc := chart.Send(req.Event, fleet.Executor)
			resp := wsResponse{
				ChartId:       req.ChartId,
				Configuration: core.ActiveLeaves(sc),
				Phase:         sc.Phase.String(),
			}
			js, err := json.Marshal(resp)
			if err != nil {
				util.Logf("host: marshaling websocket response: %v", err)
				continue
			}
			if err := conn.WriteMessage(mt, js); err != nil {
				return
			}
		}
	}
}

func writeWSError(conn *websocket.Conn, mt int, chartId string, err error) {
	js, merr := json.Marshal(wsResponse{ChartId: chartId, Error: err.Error()})
	if merr != nil {
		return
	}
	_ = conn.WriteMessage(mt, js)
}

type unknownChartError struct{ id string }

func (e *unknownChartError) Error() string { return "host: unknown chart " + e.id }

func errUnknownChart(id string) error { return &unknownChartError{id: id} }
